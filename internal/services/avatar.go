package services

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math/rand"
	"os"
	"strings"
	"time"
	"unicode"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"gorm.io/gorm"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/utils"
)

type AvatarService interface {
	CreateAndStoreUserAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error
	GenerateUserAvatar(user *types.User) (bytes.Buffer, error)
}

type avatarService struct {
	log            *logger.Logger
	storageService StorageService

	bgColors []color.NRGBA
	fontFace font.Face
}

// Fixed palette for generated initials avatars.
var avatarPalette = []color.NRGBA{
	{R: 58, G: 102, B: 77, A: 255},
	{R: 52, G: 73, B: 94, A: 255},
	{R: 142, G: 68, B: 173, A: 255},
	{R: 192, G: 57, B: 43, A: 255},
	{R: 211, G: 84, B: 0, A: 255},
	{R: 41, G: 128, B: 185, A: 255},
	{R: 39, G: 174, B: 96, A: 255},
}

func NewAvatarService(log *logger.Logger, storageService StorageService) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	fontPath := utils.GetEnv("AVATAR_FONT", "assets/fonts/DejaVuSans.ttf", serviceLog)
	face, err := loadFontFace(fontPath, 206)
	if err != nil {
		return nil, fmt.Errorf("Could not load avatar font: %w", err)
	}

	return &avatarService{
		log:            serviceLog,
		storageService: storageService,
		bgColors:       avatarPalette,
		fontFace:       face,
	}, nil
}

func (as *avatarService) CreateAndStoreUserAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error {
	buf, err := as.GenerateUserAvatar(user)
	if err != nil {
		return err
	}

	oldKey := strings.TrimSpace(user.AvatarKey)

	// Versioned key so browsers never serve a stale cached avatar.
	newKey := fmt.Sprintf("avatars/%s/%d.png", user.ID.String(), time.Now().UnixNano())
	url, err := as.storageService.Save(ctx, newKey, buf.Bytes())
	if err != nil {
		return fmt.Errorf("Failed to store user avatar: %w", err)
	}

	user.AvatarKey = newKey
	user.AvatarURL = url

	if oldKey != "" && oldKey != newKey {
		if err := as.storageService.Delete(ctx, oldKey); err != nil {
			as.log.Warn("Failed to delete old avatar (ignored)", "oldKey", oldKey, "error", err)
		}
	}
	return nil
}

func (as *avatarService) GenerateUserAvatar(user *types.User) (bytes.Buffer, error) {
	const size = 512

	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	dc.SetColor(as.bgColors[rand.Intn(len(as.bgColors))])
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	initials := computeInitials(user.FullName)

	dc.SetFontFace(as.fontFace)
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(size)/2, float64(size)/2

	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2)+5, cy+(th/2)-10)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("Failed to encode PNG: %w", err)
	}
	return buf, nil
}

// computeInitials takes the first letter of the first and last words of a
// full name. Single-word names yield a single initial.
func computeInitials(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return "?"
	}
	first := []rune(fields[0])
	out := string(unicode.ToUpper(first[0]))
	if len(fields) > 1 {
		last := []rune(fields[len(fields)-1])
		out += string(unicode.ToUpper(last[0]))
	}
	return out
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("Failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("Failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
