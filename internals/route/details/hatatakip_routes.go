// internals/route/details/hatatakip_routes.go
package details

import (
	errorRecordRoutes "hatatakip_backend/internals/features/error_records/route"
	errorRecordService "hatatakip_backend/internals/features/error_records/service"
	solutionRoutes "hatatakip_backend/internals/features/solutions/route"
	statsRoutes "hatatakip_backend/internals/features/stats/route"
	statsService "hatatakip_backend/internals/features/stats/service"
	studentRoutes "hatatakip_backend/internals/features/students/route"
	subjectRoutes "hatatakip_backend/internals/features/subjects/route"
	helper "hatatakip_backend/internals/helpers"
	"hatatakip_backend/internals/helpers/events"
	"hatatakip_backend/internals/helpers/storage"
	"hatatakip_backend/internals/helpers/uploads"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps are the shared resources every feature route receives.
type Deps struct {
	DB        *gorm.DB
	Validator *helper.Validator
	Store     storage.BlobStore
	Uploader  *uploads.Uploader
	Events    events.Publisher
	Stats     *statsService.StatsService
}

// paths of one API flavour; the deployed UI still calls the Turkish ones.
type paths struct {
	students, subjects, errors, stats string
	status, solutions                 string
}

var (
	englishPaths = paths{"/students", "/subjects", "/errors", "/stats", "status", "solutions"}
	legacyPaths  = paths{"/ogrenciler", "/konular", "/hatalar", "/istatistikler", "durum", "cozumler"}
)

// HatatakipRoutes mounts every feature under api, once per path flavour.
func HatatakipRoutes(api fiber.Router, d Deps) {
	records := errorRecordService.NewErrorRecordService(d.DB, d.Store, d.Events)
	stats := d.Stats
	if stats == nil {
		stats = statsService.NewStatsService(d.DB)
	}

	for _, p := range []paths{englishPaths, legacyPaths} {
		studentRoutes.StudentRoutes(api.Group(p.students), d.DB, d.Validator, d.Events)
		subjectRoutes.SubjectRoutes(api.Group(p.subjects), d.DB, d.Validator)

		errs := api.Group(p.errors)
		solutionRoutes.SolutionRoutes(errs, p.solutions, d.DB, records, d.Validator, d.Uploader, d.Events)
		errorRecordRoutes.ErrorRecordRoutes(errs, records, d.Validator, d.Uploader, p.status)

		statsRoutes.StatsRoutes(api.Group(p.stats), stats)
	}
}
