package immich

import (
	"time"

	"pindrop/internal/domain"
)

// mapAsset converts an API asset to the domain model. The EXIF capture time
// wins over the file timestamp when both are present.
func mapAsset(dto assetDTO) domain.Asset {
	asset := domain.Asset{
		ID:               dto.ID,
		OriginalFileName: dto.OriginalFileName,
		TakenAt:          parseTime(dto.FileCreatedAt),
	}
	if dto.ExifInfo != nil {
		asset.CameraModel = dto.ExifInfo.Model
		if t := parseTime(dto.ExifInfo.DateTimeOriginal); !t.IsZero() {
			asset.TakenAt = t
		}
	}
	return asset
}

func mapAssets(dtos []assetDTO) []domain.Asset {
	assets := make([]domain.Asset, len(dtos))
	for i, dto := range dtos {
		assets[i] = mapAsset(dto)
	}
	return assets
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
