package events

import (
	"context"
	"errors"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisherEncodesEvent(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	e := New(ErrorRecordStatusChanged, 7, map[string]string{"durum": "çözüldü"})
	require.NoError(t, p.Publish(context.Background(), e))
	require.Len(t, w.msgs, 1)

	assert.Equal(t, "error_record.status_changed:7", string(w.msgs[0].Key))

	var decoded map[string]interface{}
	require.NoError(t, sonic.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, ErrorRecordStatusChanged, decoded["type"])
	assert.EqualValues(t, 7, decoded["entity_id"])
	assert.Equal(t, "çözüldü", decoded["data"].(map[string]interface{})["durum"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestFromConfig(t *testing.T) {
	assert.IsType(t, Noop{}, FromConfig("", "topic"))
	assert.IsType(t, &KafkaPublisher{}, FromConfig("localhost:9092", "topic"))
}

func TestEmitSwallowsErrors(t *testing.T) {
	r := &Recorder{Err: errors.New("broker down")}
	assert.NotPanics(t, func() {
		Emit(context.Background(), r, New(SolutionAdded, 1, nil))
		Emit(context.Background(), nil, New(SolutionAdded, 1, nil))
	})
	assert.Empty(t, r.Events)
}
