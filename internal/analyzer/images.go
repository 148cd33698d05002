package analyzer

import "math"

// ImageInfo describes one <img> element for the images result list.
type ImageInfo struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	HasAlt bool   `json:"has_alt"`
}

// ImagesExtractor reports alt-text coverage over the page's images.
type ImagesExtractor struct{}

func NewImagesExtractor() *ImagesExtractor {
	return &ImagesExtractor{}
}

func (e *ImagesExtractor) Name() string {
	return "images"
}

func (e *ImagesExtractor) Extract(ctx *Context) Result {
	if !ctx.Fetched {
		return errorResult()
	}

	images := ctx.Doc.Images()
	totalImages := len(images)
	imagesWithAlt := 0
	imagesList := make([]ImageInfo, 0, totalImages)

	for _, img := range images {
		hasAlt := img.Alt != ""
		if hasAlt {
			imagesWithAlt++
		}
		imagesList = append(imagesList, ImageInfo{
			Src:    img.Src,
			Alt:    img.Alt,
			HasAlt: hasAlt,
		})
	}

	// Pages without images report 0, not a division by zero
	altRatio := 0.0
	if totalImages > 0 {
		altRatio = math.Round(float64(imagesWithAlt)/float64(totalImages)*100*100) / 100
	}

	return Result{
		"total_images":       totalImages,
		"images_with_alt":    imagesWithAlt,
		"images_without_alt": totalImages - imagesWithAlt,
		"alt_ratio":          altRatio,
		"images":             imagesList,
	}
}
