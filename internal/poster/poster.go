package poster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/five82/cinedeck/internal/logging"
)

const (
	defaultMaxBytes = 4 << 20
	defaultTimeout  = 10 * time.Second
	halfBlock       = "▀"
)

// Fetcher downloads poster images.
type Fetcher struct {
	http     *http.Client
	maxBytes int64
	log      *zap.Logger
}

// NewFetcher builds a Fetcher. A zero timeout uses 10s.
func NewFetcher(timeout time.Duration, logger *zap.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{
		http:     &http.Client{Timeout: timeout},
		maxBytes: defaultMaxBytes,
		log:      logging.OrNop(logger).Named("poster"),
	}
}

// Fetch downloads and decodes a JPEG or PNG image.
func (f *Fetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("poster url is empty")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png")

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch poster: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch poster: status %d", resp.StatusCode)
	}
	body := io.LimitReader(resp.Body, f.maxBytes+1)
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read poster: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("poster exceeds %d bytes", f.maxBytes)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode poster: %w", err)
	}
	f.log.Debug("fetched poster", zap.String("format", format), zap.Int("bytes", len(data)))
	return img, nil
}

// Render draws img into cols x rows terminal cells. Each cell carries two
// vertical pixels: the upper one as foreground of a half block, the lower as
// background.
func Render(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	var b strings.Builder
	for y := 0; y < rows; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < cols; x++ {
			top := hexColor(dst.RGBAAt(x, y*2))
			bottom := hexColor(dst.RGBAAt(x, y*2+1))
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render(halfBlock))
		}
	}
	return b.String()
}

// Size fits an image with the given aspect ratio into at most maxCols x
// maxRows cells. Cells are two pixels tall.
func Size(bounds image.Rectangle, maxCols, maxRows int) (cols, rows int) {
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 || maxCols <= 0 || maxRows <= 0 {
		return 0, 0
	}
	cols = maxCols
	rows = (cols*h + w) / (2 * w)
	if rows > maxRows {
		rows = maxRows
		cols = rows * 2 * w / h
	}
	return max(cols, 1), max(rows, 1)
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
