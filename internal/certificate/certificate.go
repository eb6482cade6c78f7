// Package certificate renders completion certificates as PDF files.
package certificate

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/abhisek/tubequiz/internal/store"
)

// ErrEmptyName is returned when the certificate holder's name is blank.
var ErrEmptyName = errors.New("a name is required for the certificate")

// DefaultTitle is printed when the video title is unknown.
const DefaultTitle = "YouTube Course"

// Request describes the certificate to issue.
type Request struct {
	Name      string
	Title     string
	Score     float64
	VideoID   string
	SessionID string
}

// Certificate is an issued certificate.
type Certificate struct {
	ID       string
	Name     string
	Title    string
	Score    float64
	IssuedAt time.Time
	Path     string
}

// Layout positions, in points from the top of a US-Letter page.
const (
	borderInset  = 50.0
	headingY     = 150.0
	certifiesY   = 200.0
	completedY   = 240.0
	courseTitleY = 280.0
	dateY        = 350.0
	idY          = 380.0
)

// Emitter writes certificates to a directory and optionally records them.
type Emitter struct {
	dir    string
	repo   store.CertificateRepo
	logger *zap.Logger

	now    func() time.Time
	rand   io.Reader
	create func(path string) (io.WriteCloser, error)

	// compress is disabled in tests so the page text can be inspected.
	compress bool
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithRepo records every issued certificate in repo.
func WithRepo(repo store.CertificateRepo) Option {
	return func(e *Emitter) { e.repo = repo }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Emitter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEmitter creates an Emitter writing into dir ("." when empty).
func NewEmitter(dir string, opts ...Option) *Emitter {
	if dir == "" {
		dir = "."
	}
	e := &Emitter{
		dir:      dir,
		logger:   zap.NewNop(),
		now:      time.Now,
		rand:     rand.Reader,
		create:   func(path string) (io.WriteCloser, error) { return os.Create(path) },
		compress: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Issue renders the certificate to <dir>/certificate-<id>.pdf.
func (e *Emitter) Issue(ctx context.Context, req Request) (*Certificate, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = DefaultTitle
	}

	id, err := e.newID()
	if err != nil {
		return nil, fmt.Errorf("generate certificate ID: %w", err)
	}

	cert := &Certificate{
		ID:       id,
		Name:     name,
		Title:    title,
		Score:    req.Score,
		IssuedAt: e.now().UTC(),
		Path:     filepath.Join(e.dir, "certificate-"+id+".pdf"),
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create certificate directory: %w", err)
	}

	if err := e.writeFile(cert); err != nil {
		return nil, err
	}

	e.logger.Info("certificate issued",
		zap.String("certificate_id", cert.ID),
		zap.String("path", cert.Path),
		zap.Float64("score", cert.Score))

	if e.repo != nil {
		rec := store.CertificateRecord{
			ID:        cert.ID,
			IssuedAt:  cert.IssuedAt,
			Name:      cert.Name,
			Score:     cert.Score,
			VideoID:   req.VideoID,
			Title:     cert.Title,
			SessionID: req.SessionID,
			Path:      cert.Path,
		}
		if err := e.repo.SaveCertificate(ctx, rec); err != nil {
			e.logger.Warn("failed to record certificate", zap.String("certificate_id", cert.ID), zap.Error(err))
		}
	}

	return cert, nil
}

// writeFile renders cert to cert.Path. A failed write leaves no file behind.
func (e *Emitter) writeFile(cert *Certificate) error {
	f, err := e.create(cert.Path)
	if err != nil {
		return fmt.Errorf("create certificate file: %w", err)
	}
	if err := e.Render(f, cert); err != nil {
		f.Close()
		os.Remove(cert.Path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(cert.Path)
		return fmt.Errorf("close certificate file: %w", err)
	}
	return nil
}

// Render writes the certificate page for cert to w.
func (e *Emitter) Render(w io.Writer, cert *Certificate) error {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(e.compress)
	pdf.SetCreationDate(cert.IssuedAt)
	pdf.SetTitle("Certificate of Completion", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// The core fonts are cp1252; translate so accented names render.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	width, height := pdf.GetPageSize()

	centered := func(y float64, text string) {
		text = tr(text)
		pdf.Text((width-pdf.GetStringWidth(text))/2, y, text)
	}

	pdf.SetFont("Helvetica", "B", 24)
	centered(headingY, "Certificate of Completion")

	pdf.SetFont("Helvetica", "", 18)
	centered(certifiesY, "This certifies that "+cert.Name)
	centered(completedY, "has successfully completed the course:")
	centered(courseTitleY, "'"+cert.Title+"'")

	pdf.SetFont("Helvetica", "I", 12)
	centered(dateY, "Date: "+cert.IssuedAt.Format("2006-01-02"))
	centered(idY, "Certificate ID: "+cert.ID)

	pdf.Rect(borderInset, borderInset, width-2*borderInset, height-2*borderInset, "D")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render certificate: %w", err)
	}
	return nil
}

// newID returns 8 random bytes as 16 hex characters.
func (e *Emitter) newID() (string, error) {
	b := make([]byte, 8)
	if _, err := io.ReadFull(e.rand, b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
