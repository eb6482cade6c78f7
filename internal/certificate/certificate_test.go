package certificate

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tubequiz/internal/store"
)

var fixedTime = time.Date(2026, 5, 4, 22, 30, 0, 0, time.FixedZone("PDT", -7*3600))

func newTestEmitter(t *testing.T, opts ...Option) *Emitter {
	t.Helper()
	e := NewEmitter(t.TempDir(), opts...)
	e.now = func() time.Time { return fixedTime }
	e.rand = bytes.NewReader([]byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01, 0x02, 0x03})
	e.compress = false
	return e
}

func TestIssue_WritesPDF(t *testing.T) {
	e := newTestEmitter(t)

	cert, err := e.Issue(context.Background(), Request{Name: "  Ada Lovelace ", Title: "Intro to Go", Score: 85.7})
	require.NoError(t, err)

	assert.Equal(t, "deadbeef00010203", cert.ID)
	assert.Equal(t, "Ada Lovelace", cert.Name)
	assert.Equal(t, filepath.Join(e.dir, "certificate-deadbeef00010203.pdf"), cert.Path)
	assert.Equal(t, time.UTC, cert.IssuedAt.Location())

	data, err := os.ReadFile(cert.Path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	for _, text := range []string{
		"Certificate of Completion",
		"This certifies that Ada Lovelace",
		"has successfully completed the course:",
		"'Intro to Go'",
		"Date: 2026-05-05",
		"Certificate ID: deadbeef00010203",
	} {
		assert.Contains(t, string(data), text)
	}
}

func TestIssue_DefaultTitle(t *testing.T) {
	e := newTestEmitter(t)
	cert, err := e.Issue(context.Background(), Request{Name: "Grace"})
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, cert.Title)
}

func TestIssue_EmptyName(t *testing.T) {
	e := newTestEmitter(t)
	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := e.Issue(context.Background(), Request{Name: name, Title: "x"})
		assert.ErrorIs(t, err, ErrEmptyName)
	}
	entries, err := os.ReadDir(e.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIssue_RandomIDs(t *testing.T) {
	e := NewEmitter(t.TempDir())
	idRe := regexp.MustCompile(`^[0-9a-f]{16}$`)

	a, err := e.Issue(context.Background(), Request{Name: "A"})
	require.NoError(t, err)
	b, err := e.Issue(context.Background(), Request{Name: "B"})
	require.NoError(t, err)

	assert.Regexp(t, idRe, a.ID)
	assert.Regexp(t, idRe, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestIssue_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "certs")
	e := NewEmitter(dir)
	cert, err := e.Issue(context.Background(), Request{Name: "A"})
	require.NoError(t, err)
	assert.FileExists(t, cert.Path)
}

func TestIssue_RecordsInStore(t *testing.T) {
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	e := newTestEmitter(t, WithRepo(s.CertificateRepo()))
	cert, err := e.Issue(context.Background(), Request{
		Name: "Ada", Title: "T", Score: 71.4, VideoID: "vid", SessionID: "sess",
	})
	require.NoError(t, err)

	recs, err := s.CertificateRepo().ListCertificates(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, cert.ID, recs[0].ID)
	assert.Equal(t, "vid", recs[0].VideoID)
	assert.Equal(t, "sess", recs[0].SessionID)
	assert.Equal(t, cert.Path, recs[0].Path)
	assert.InDelta(t, 71.4, recs[0].Score, 0.001)
}

type failingRepo struct{}

func (failingRepo) SaveCertificate(context.Context, store.CertificateRecord) error {
	return errors.New("disk full")
}

func (failingRepo) ListCertificates(context.Context, store.QueryOpts) ([]store.CertificateRecord, error) {
	return nil, nil
}

func TestIssue_RecordFailureIsNotFatal(t *testing.T) {
	e := newTestEmitter(t, WithRepo(failingRepo{}))
	cert, err := e.Issue(context.Background(), Request{Name: "Ada"})
	require.NoError(t, err)
	assert.FileExists(t, cert.Path)
}

func TestRender_AccentedName(t *testing.T) {
	e := newTestEmitter(t)
	var buf bytes.Buffer
	err := e.Render(&buf, &Certificate{ID: "00", Name: "José", Title: "T", IssuedAt: fixedTime})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "This certifies that Jos\xe9")
}

// closeErrFile is a real file whose Close reports a failure, as a full
// disk would on flush.
type closeErrFile struct{ *os.File }

func (f closeErrFile) Close() error {
	f.File.Close()
	return errors.New("no space left on device")
}

func TestIssue_CloseFailureRemovesFile(t *testing.T) {
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	e := newTestEmitter(t, WithRepo(s.CertificateRepo()))
	e.create = func(path string) (io.WriteCloser, error) {
		f, err := os.Create(path)
		return closeErrFile{f}, err
	}

	cert, err := e.Issue(context.Background(), Request{Name: "Ada"})
	require.Error(t, err)
	assert.Nil(t, cert)
	assert.Contains(t, err.Error(), "close certificate file")

	entries, err := os.ReadDir(e.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	recs, err := s.CertificateRepo().ListCertificates(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, recs)
}
