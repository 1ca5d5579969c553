package schema

import (
	"encoding/json"
	"fmt"
)

// GalleryKind is the wire tag of a gallery item.
type GalleryKind string

const (
	GalleryImage GalleryKind = "image"
	GalleryVideo GalleryKind = "video"
)

// GalleryItem is one entry of a program gallery. The set of implementations
// is closed: ImageItem and VideoItem.
type GalleryItem interface {
	Kind() GalleryKind
	Source() string
	galleryItem()
}

// ImageItem is a still image in a gallery.
type ImageItem struct{ Src string }

// VideoItem is a video clip in a gallery.
type VideoItem struct{ Src string }

func (ImageItem) Kind() GalleryKind { return GalleryImage }
func (i ImageItem) Source() string  { return i.Src }
func (ImageItem) galleryItem()      {}

func (VideoItem) Kind() GalleryKind { return GalleryVideo }
func (v VideoItem) Source() string  { return v.Src }
func (VideoItem) galleryItem()      {}

// Gallery is an ordered list of gallery items. Order is display order.
type Gallery []GalleryItem

type galleryWire struct {
	Type GalleryKind `json:"type"`
	Src  string      `json:"src"`
}

// MarshalJSON encodes the gallery as [{"type": ..., "src": ...}, ...].
func (g Gallery) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("null"), nil
	}
	wire := make([]galleryWire, 0, len(g))
	for i, item := range g {
		switch it := item.(type) {
		case ImageItem:
			wire = append(wire, galleryWire{Type: GalleryImage, Src: it.Src})
		case VideoItem:
			wire = append(wire, galleryWire{Type: GalleryVideo, Src: it.Src})
		default:
			return nil, fmt.Errorf("schema: gallery item %d: unsupported type %T", i, item)
		}
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the wire form. Unknown item types are rejected.
func (g *Gallery) UnmarshalJSON(data []byte) error {
	var wire []galleryWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire == nil {
		*g = nil
		return nil
	}
	out := make(Gallery, 0, len(wire))
	for i, w := range wire {
		switch w.Type {
		case GalleryImage:
			out = append(out, ImageItem{Src: w.Src})
		case GalleryVideo:
			out = append(out, VideoItem{Src: w.Src})
		default:
			return fmt.Errorf("schema: gallery item %d: unknown type %q", i, w.Type)
		}
	}
	*g = out
	return nil
}
