package processor

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/ledboard/internal/domain"
	"go.uber.org/zap"
)

// Native LED canvas; frames are fitted to the screen afterwards
const (
	CanvasWidth  = 1536
	CanvasHeight = 3456

	paddingY    = 160
	logoHeight  = 128
	rowHeight   = 240
	rowGap      = 48
	namesTop    = 900
	namesBottom = 3000

	titleScale      = 9
	subtitleScale   = 3
	nameScale       = 7
	departmentScale = 3
	footerScale     = 4

	watermarkOpacity = 0.03
	jpegQuality      = 90
)

var (
	colorBackground = color.NRGBA{R: 0xf4, G: 0xf7, B: 0xf9, A: 0xff}
	colorPrimary    = color.NRGBA{R: 0x00, G: 0x46, B: 0x66, A: 0xff}
	colorAccent     = color.NRGBA{R: 0xe3, G: 0x1e, B: 0x24, A: 0xff}
	colorBackdrop   = color.NRGBA{R: 0x00, G: 0x1a, B: 0x2c, A: 0xff}
	colorBlank      = color.NRGBA{A: 0xff}
)

// Scene is the kind of frame a snapshot maps to
type Scene string

const (
	SceneBlank    Scene = "blank"
	SceneLoading  Scene = "loading"
	SceneBirthday Scene = "birthday"
	SceneVideo    Scene = "video"
)

// SceneOf maps a snapshot to the frame it should show
func SceneOf(snap domain.Snapshot) Scene {
	switch {
	case !snap.MonitorOn:
		return SceneBlank
	case !snap.Loaded:
		return SceneLoading
	case snap.State.Mode == domain.ModeBirthday && len(snap.Visible) > 0:
		return SceneBirthday
	default:
		return SceneVideo
	}
}

// FrameComposer draws the still frames of the panel
type FrameComposer struct {
	logger *zap.Logger
	res    *domain.ScreenResolution
	appCfg domain.Config
	logo   image.Image
	next   int
}

// NewFrameComposer creates a composer; a missing logo only disables the logo layers
func NewFrameComposer(logger *zap.Logger, res *domain.ScreenResolution, appCfg domain.Config) *FrameComposer {
	c := &FrameComposer{
		logger: logger,
		res:    res,
		appCfg: appCfg,
	}

	if path := appCfg.GetLogoPath(); path != "" {
		logo, err := imaging.Open(path)
		if err != nil {
			logger.Warn("Failed to load logo", zap.String("path", path), zap.Error(err))
		} else {
			c.logo = logo
		}
	}

	return c
}

// Compose writes the frame for snap to the output directory and returns its path.
// Two file names alternate so setters that cache by path still refresh.
func (c *FrameComposer) Compose(ctx context.Context, snap domain.Snapshot) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	scene := SceneOf(snap)

	var canvas *image.NRGBA
	switch scene {
	case SceneBlank:
		canvas = imaging.New(CanvasWidth, CanvasHeight, colorBlank)
	case SceneLoading:
		canvas = c.loadingCanvas()
	case SceneBirthday:
		canvas = c.birthdayCanvas(snap.Visible)
	default:
		canvas = imaging.New(CanvasWidth, CanvasHeight, colorBackdrop)
	}

	letterbox := colorBackdrop
	if scene == SceneBlank {
		letterbox = colorBlank
	}
	frame := c.fitToScreen(canvas, letterbox)

	outputDir := c.appCfg.GetOutputDir()
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(outputDir, fmt.Sprintf("frame_%d.jpg", c.next))
	if err := imaging.Save(frame, outputPath, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("failed to write frame: %w", err)
	}
	c.next = 1 - c.next

	c.logger.Debug("Frame composed",
		zap.String("scene", string(scene)),
		zap.Int("names", len(snap.Visible)),
		zap.String("path", outputPath))

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return outputPath, nil
	}
	return absPath, nil
}

func (c *FrameComposer) loadingCanvas() *image.NRGBA {
	canvas := imaging.New(CanvasWidth, CanvasHeight, colorBackdrop)
	if c.logo == nil {
		return canvas
	}

	logo := imaging.Grayscale(imaging.Resize(c.logo, 0, logoHeight, imaging.Lanczos))
	pos := image.Pt((CanvasWidth-logo.Bounds().Dx())/2, (CanvasHeight-logo.Bounds().Dy())/2)
	return imaging.Overlay(canvas, logo, pos, 0.2)
}

func (c *FrameComposer) birthdayCanvas(people []domain.Person) *image.NRGBA {
	canvas := imaging.New(CanvasWidth, CanvasHeight, colorBackground)
	maxWidth := CanvasWidth - 2*64

	y := paddingY
	if c.logo != nil {
		mark := imaging.Grayscale(imaging.Resize(c.logo, CanvasWidth*6/5, 0, imaging.Lanczos))
		pos := image.Pt((CanvasWidth-mark.Bounds().Dx())/2, (CanvasHeight-mark.Bounds().Dy())/2)
		canvas = imaging.Overlay(canvas, mark, pos, watermarkOpacity)

		header := imaging.Resize(c.logo, 0, logoHeight, imaging.Lanczos)
		canvas = imaging.Overlay(canvas, header, image.Pt((CanvasWidth-header.Bounds().Dx())/2, y), 1)
		y += logoHeight
	}

	y += 48
	drawDivider(canvas, y, 256, fade(colorPrimary, colorBackground, 0.2))

	y += 128
	y = drawCentered(canvas, renderLine([]textSpan{
		{"TUG'ILGAN ", colorPrimary},
		{"KUN", colorAccent},
	}, titleScale, maxWidth), y)
	drawCentered(canvas, renderLine([]textSpan{
		{"BAYRAMINGIZ MUBORAK", fade(colorPrimary, colorBackground, 0.4)},
	}, subtitleScale, maxWidth), y+40)

	block := len(people)*(rowHeight+rowGap) - rowGap
	rowY := namesTop + (namesBottom-namesTop-block)/2
	for _, p := range people {
		name := renderLine([]textSpan{{p.Name, colorPrimary}}, nameScale, maxWidth)
		bottom := drawCentered(canvas, name, rowY+24)
		if dept := strings.ToUpper(strings.TrimSpace(p.Department)); dept != "" {
			drawCentered(canvas, renderLine([]textSpan{{dept, colorAccent}}, departmentScale, maxWidth), bottom+16)
		}
		rowY += rowHeight + rowGap
	}

	footerY := CanvasHeight - paddingY - 13*footerScale
	drawDivider(canvas, footerY-48, 384, fade(colorPrimary, colorBackground, 0.1))
	drawCentered(canvas, renderLine([]textSpan{
		{"Samimiy tilaklar bilan ", fade(colorPrimary, colorBackground, 0.6)},
		{"SQB jamoasi", colorPrimary},
	}, footerScale, maxWidth), footerY)

	return canvas
}

// fitToScreen scales the canvas into the screen keeping its aspect ratio
func (c *FrameComposer) fitToScreen(canvas *image.NRGBA, letterbox color.Color) *image.NRGBA {
	if c.res.Width == CanvasWidth && c.res.Height == CanvasHeight {
		return canvas
	}

	fitted := imaging.Fit(canvas, c.res.Width, c.res.Height, imaging.Lanczos)
	screen := imaging.New(c.res.Width, c.res.Height, letterbox)
	return imaging.PasteCenter(screen, fitted)
}

func drawDivider(dst *image.NRGBA, y, width int, col color.Color) {
	x := (dst.Bounds().Dx() - width) / 2
	draw.Draw(dst, image.Rect(x, y, x+width, y+2), image.NewUniform(col), image.Point{}, draw.Src)
}
