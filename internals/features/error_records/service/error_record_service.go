package service

import (
	"context"
	"log"
	"time"

	database "hatatakip_backend/internals/databases"
	"hatatakip_backend/internals/features/error_records/dto"
	"hatatakip_backend/internals/features/error_records/model"
	solutionDTO "hatatakip_backend/internals/features/solutions/dto"
	solutionModel "hatatakip_backend/internals/features/solutions/model"
	"hatatakip_backend/internals/helpers/events"
	"hatatakip_backend/internals/helpers/storage"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("error record not found")
	ErrInvalidReference = errors.New("error record references a missing student or subject")
	ErrBlobDelete       = errors.New("error record image could not be deleted")
)

// ListFilter: zero values mean "no filter".
type ListFilter struct {
	StudentID *int64
	SubjectID *int64
	Status    string
	Search    string
}

type ErrorRecordService struct {
	DB     *gorm.DB
	Store  storage.BlobStore
	Events events.Publisher
	Now    func() time.Time
}

func NewErrorRecordService(db *gorm.DB, store storage.BlobStore, pub events.Publisher) *ErrorRecordService {
	return &ErrorRecordService{DB: db, Store: store, Events: pub, Now: time.Now}
}

func (s *ErrorRecordService) joined(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Table("hatalar AS h").
		Select("h.*, o.ad AS ogrenci_ad, o.soyad AS ogrenci_soyad, k.kategori AS kategori, k.alt_konu AS alt_konu").
		Joins("LEFT JOIN ogrenciler o ON o.id = h.ogrenci_id").
		Joins("LEFT JOIN konular k ON k.id = h.konu_id")
}

// List returns flattened rows, newest first.
func (s *ErrorRecordService) List(ctx context.Context, f ListFilter) ([]dto.ErrorRecordRow, error) {
	q := s.joined(ctx)
	if f.StudentID != nil {
		q = q.Where("h.ogrenci_id = ?", *f.StudentID)
	}
	if f.SubjectID != nil {
		q = q.Where("h.konu_id = ?", *f.SubjectID)
	}
	if f.Status != "" {
		q = q.Where("h.durum = ?", f.Status)
	}
	if f.Search != "" {
		titleCond, pattern := database.ContainsFold(s.DB, "h.baslik", f.Search)
		descCond, _ := database.ContainsFold(s.DB, "h.aciklama", f.Search)
		q = q.Where(s.DB.Where(titleCond, pattern).Or(descCond, pattern))
	}

	rows := make([]dto.ErrorRecordRow, 0)
	if err := q.Order("h.olusturma_tarihi DESC").Order("h.id DESC").Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list error records")
	}
	return rows, nil
}

// Get returns the flattened row with its solutions, newest first.
func (s *ErrorRecordService) Get(ctx context.Context, id int64) (*dto.ErrorRecordDetail, error) {
	var rows []dto.ErrorRecordRow
	if err := s.joined(ctx).Where("h.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "get error record")
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	var solutions []solutionModel.SolutionModel
	if err := s.DB.WithContext(ctx).
		Where("hata_id = ?", id).
		Order("olusturma_tarihi DESC").
		Order("id DESC").
		Find(&solutions).Error; err != nil {
		return nil, errors.Wrap(err, "list solutions")
	}

	return &dto.ErrorRecordDetail{
		ErrorRecordRow: rows[0],
		Solutions:      solutionDTO.FromModels(solutions),
	}, nil
}

func (s *ErrorRecordService) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&model.ErrorRecordModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, errors.Wrap(err, "count error record")
	}
	return n > 0, nil
}

func (s *ErrorRecordService) find(ctx context.Context, id int64) (*model.ErrorRecordModel, error) {
	var m model.ErrorRecordModel
	if err := s.DB.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "find error record")
	}
	return &m, nil
}

// Create inserts m. An image, if any, has already been uploaded; when the
// insert fails that object is left behind and only logged.
func (s *ErrorRecordService) Create(ctx context.Context, m *model.ErrorRecordModel) error {
	if err := s.DB.WithContext(ctx).Omit("Student", "Subject").Create(m).Error; err != nil {
		if m.ErrorRecordImageKey != nil {
			log.Printf("[ERRORS][CREATE] insert failed, orphaned object %s", *m.ErrorRecordImageKey)
		}
		if database.IsForeignKeyViolation(err) {
			return errors.Wrap(ErrInvalidReference, err.Error())
		}
		return errors.Wrap(err, "create error record")
	}
	log.Printf("[ERRORS][CREATE] id=%d ogrenci_id=%d durum=%s", m.ErrorRecordID, m.ErrorRecordStudentID, m.ErrorRecordStatus)
	events.Emit(ctx, s.Events, events.New(events.ErrorRecordCreated, m.ErrorRecordID, dto.FromModel(*m)))
	return nil
}

var updateColumns = []string{"konu_id", "baslik", "aciklama", "durum", "notlar", "cozum_tarihi"}

// Update replaces the editable fields. cozum_tarihi follows durum: set when
// entering çözüldü, kept while staying there, cleared otherwise.
func (s *ErrorRecordService) Update(ctx context.Context, id int64, req dto.UpdateErrorRecordRequest) (*model.ErrorRecordModel, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	prev := m.ErrorRecordStatus
	req.ApplyTo(m, s.Now())

	if err := s.save(ctx, m, updateColumns...); err != nil {
		return nil, err
	}
	if prev != m.ErrorRecordStatus {
		s.emitStatus(ctx, m, prev)
	}
	return m, nil
}

// UpdateStatus sets durum; çözüldü always restamps cozum_tarihi.
func (s *ErrorRecordService) UpdateStatus(ctx context.Context, id int64, status string) (*model.ErrorRecordModel, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	prev := m.ErrorRecordStatus
	m.StampStatus(status, s.Now())

	if err := s.save(ctx, m, "durum", "cozum_tarihi"); err != nil {
		return nil, err
	}
	log.Printf("[ERRORS][STATUS] id=%d %s -> %s", id, prev, status)
	s.emitStatus(ctx, m, prev)
	return m, nil
}

func (s *ErrorRecordService) save(ctx context.Context, m *model.ErrorRecordModel, columns ...string) error {
	err := s.DB.WithContext(ctx).Model(m).Select(columns).Updates(m).Error
	if err == nil {
		return nil
	}
	if database.IsForeignKeyViolation(err) {
		return errors.Wrap(ErrInvalidReference, err.Error())
	}
	return errors.Wrap(err, "update error record")
}

func (s *ErrorRecordService) emitStatus(ctx context.Context, m *model.ErrorRecordModel, prev string) {
	events.Emit(ctx, s.Events, events.New(events.ErrorRecordStatusChanged, m.ErrorRecordID, map[string]interface{}{
		"onceki_durum": prev,
		"durum":        m.ErrorRecordStatus,
		"cozum_tarihi": m.ErrorRecordResolvedAt,
	}))
}

// Delete removes the stored image first, then the row. If the image delete
// fails the row is kept so the delete can be retried.
func (s *ErrorRecordService) Delete(ctx context.Context, id int64) error {
	m, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if m.ErrorRecordImageKey != nil && *m.ErrorRecordImageKey != "" {
		if err := s.Store.Delete(ctx, *m.ErrorRecordImageKey); err != nil {
			return errors.Wrapf(ErrBlobDelete, "%s: %v", *m.ErrorRecordImageKey, err)
		}
	}

	if err := s.DB.WithContext(ctx).Delete(&model.ErrorRecordModel{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "delete error record")
	}
	log.Printf("[ERRORS][DELETE] id=%d", id)
	events.Emit(ctx, s.Events, events.New(events.ErrorRecordDeleted, id, nil))
	return nil
}
