// Package transcript fetches the spoken text and title of a video.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kkdai/youtube/v2"
)

// DefaultLanguage is the caption language requested when none is configured.
const DefaultLanguage = "en"

// Transcript is the caption text of one video.
type Transcript struct {
	VideoID string
	Title   string
	Text    string
}

// Fetcher retrieves transcripts by video ID.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string) (*Transcript, error)
}

// ErrUnavailable is returned when no transcript could be acquired for a video.
type ErrUnavailable struct {
	VideoID string
	Err     error
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("transcript unavailable for %s: %v", e.VideoID, e.Err)
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// errEmpty marks a transcript that exists but contains no text.
var errEmpty = errors.New("transcript is empty")

// videoClient is the subset of youtube.Client used by YouTubeFetcher.
type videoClient interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetTranscriptCtx(ctx context.Context, video *youtube.Video, lang string) (youtube.VideoTranscript, error)
}

// YouTubeFetcher fetches captions from YouTube.
type YouTubeFetcher struct {
	client   videoClient
	language string
}

// NewYouTubeFetcher returns a fetcher requesting captions in language.
func NewYouTubeFetcher(language string) *YouTubeFetcher {
	if language == "" {
		language = DefaultLanguage
	}
	return &YouTubeFetcher{client: &youtube.Client{}, language: language}
}

// Fetch returns the video's title and its caption segments joined by single
// spaces. Every failure is reported as *ErrUnavailable.
func (f *YouTubeFetcher) Fetch(ctx context.Context, videoID string) (*Transcript, error) {
	video, err := f.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, &ErrUnavailable{VideoID: videoID, Err: fmt.Errorf("load video: %w", err)}
	}

	segments, err := f.client.GetTranscriptCtx(ctx, video, f.language)
	if err != nil {
		return nil, &ErrUnavailable{VideoID: videoID, Err: fmt.Errorf("load captions (%s): %w", f.language, err)}
	}

	text := Join(segments)
	if strings.TrimSpace(text) == "" {
		return nil, &ErrUnavailable{VideoID: videoID, Err: errEmpty}
	}

	return &Transcript{VideoID: videoID, Title: video.Title, Text: text}, nil
}

// Join concatenates caption segments with a single space.
func Join(segments youtube.VideoTranscript) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = s.Text
	}
	return strings.Join(parts, " ")
}
