package export

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"logbook/internal/models"
	"logbook/internal/report"
	"logbook/internal/storage/stubs"
)

var asOf = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

var documentNames = []string{
	"flights.json", "stats.json", "charts.json", "leaderboards.json",
	"aircraft.json", "people.json", "routes.json",
}

func newBuilder(t *testing.T) (*report.Builder, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	db := stubs.NewMockDB()

	me := models.Pilot{FirstName: "Jane", Role: models.RolePilot}
	require.NoError(t, db.CreatePilot(ctx, &me))
	plane := models.Plane{TailNumber: "N123AB", Type: "C172", Class: models.SingleEngineLand}
	require.NoError(t, db.CreatePlane(ctx, &plane))
	require.NoError(t, db.CreateFlight(ctx, &models.Flight{
		PilotID: me.ID, Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Plane: plane,
		FlightTime: decimal.RequireFromString("1.2"), PICTime: decimal.RequireFromString("1.2"),
		DayLandings: 1,
	}))
	return report.NewBuilder(db, zap.NewNop()), me.ID
}

func TestExporter_Dir(t *testing.T) {
	builder, pilotID := newBuilder(t)
	dir := filepath.Join(t.TempDir(), "site", "data")
	sink, err := NewDirSink(dir)
	require.NoError(t, err)

	names, err := NewExporter(builder, zap.NewNop(), sink).Run(context.Background(), pilotID, asOf)
	require.NoError(t, err)
	assert.Equal(t, documentNames, names)

	for _, name := range names {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	data, err := os.ReadFile(filepath.Join(dir, "flights.json"))
	require.NoError(t, err)
	var flights []map[string]any
	require.NoError(t, json.Unmarshal(data, &flights))
	require.Len(t, flights, 1)
	assert.Equal(t, "2024-06-01", flights[0]["date"])
	assert.Equal(t, 1.2, flights[0]["flight_time"])

	data, err = os.ReadFile(filepath.Join(dir, "stats.json"))
	require.NoError(t, err)
	var stats map[string]any
	require.NoError(t, json.Unmarshal(data, &stats))
	assert.Contains(t, stats, "total_times")
	assert.Contains(t, stats, "medical")
	assert.Contains(t, stats, "last_updated")
}

func TestExporter_NoSinks(t *testing.T) {
	builder, pilotID := newBuilder(t)
	_, err := NewExporter(builder, zap.NewNop()).Run(context.Background(), pilotID, asOf)
	assert.Error(t, err)
}

func TestExporter_UnknownPilot(t *testing.T) {
	builder, _ := newBuilder(t)
	sink, err := NewDirSink(t.TempDir())
	require.NoError(t, err)
	_, err = NewExporter(builder, zap.NewNop(), sink).Run(context.Background(), uuid.New(), asOf)
	assert.Error(t, err)
}

// fakeS3 records PutObject requests
type fakeS3 struct {
	mu   sync.Mutex
	puts map[string]string
	ct   map[string]string
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.Method != http.MethodPut {
		return &http.Response{StatusCode: http.StatusNotImplemented, Body: io.NopCloser(strings.NewReader("")), Header: http.Header{}}, nil
	}
	body, _ := io.ReadAll(req.Body)
	f.puts[req.URL.Path] = string(body)
	f.ct[req.URL.Path] = req.Header.Get("Content-Type")
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("")),
		Header:     http.Header{"Etag": {`"etag"`}},
	}, nil
}

func TestExporter_S3(t *testing.T) {
	builder, pilotID := newBuilder(t)
	fake := &fakeS3{puts: make(map[string]string), ct: make(map[string]string)}

	sink, err := NewS3Sink(context.Background(), S3Config{
		Bucket:    "logbook-site",
		Endpoint:  "http://s3.test.local",
		Prefix:    "data",
		PathStyle: true,
	}, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: fake}
		o.Credentials = credentials.NewStaticCredentialsProvider("AKID", "SECRET", "")
	})
	require.NoError(t, err)
	assert.Equal(t, "s3://logbook-site/data", sink.String())
	assert.Equal(t, "data/stats.json", sink.Key("stats.json"))

	_, err = NewExporter(builder, zap.NewNop(), sink).Run(context.Background(), pilotID, asOf)
	require.NoError(t, err)

	require.Len(t, fake.puts, len(documentNames))
	for _, name := range documentNames {
		key := "/logbook-site/data/" + name
		assert.Contains(t, fake.puts, key)
		assert.Equal(t, "application/json", fake.ct[key])
	}
	assert.Contains(t, fake.puts["/logbook-site/data/stats.json"], "total_times")
}

func TestNewS3Sink_RequiresBucket(t *testing.T) {
	_, err := NewS3Sink(context.Background(), S3Config{})
	assert.Error(t, err)
}
