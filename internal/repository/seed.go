package repository

import (
	"slices"

	"github.com/inclusionhub/backend/pkg/schema"
)

const unsplash = "https://images.unsplash.com/"

// DefaultPrograms returns the seed Programs without ids, in display order.
func DefaultPrograms() []schema.Program {
	return []schema.Program{
		{
			Title:       "Inclusion Training",
			Description: "Workshops and seminars for schools and businesses to foster inclusive environments.",
			Category:    "training",
			ImageURL:    schema.Ptr(unsplash + "photo-1573496359142-b8d87734a5a2?auto=format&fit=crop&q=80"),
			Gallery: schema.Gallery{
				schema.ImageItem{Src: unsplash + "photo-1573496359142-b8d87734a5a2?auto=format&fit=crop&q=80"},
				schema.ImageItem{Src: unsplash + "photo-1531206715517-5c0ba140b2b8?auto=format&fit=crop&q=80"},
			},
		},
		{
			Title:       "Community Empowerment",
			Description: "Grassroots initiatives supporting social and economic independence.",
			Category:    "community",
			ImageURL:    schema.Ptr(unsplash + "photo-1531206715517-5c0ba140b2b8?auto=format&fit=crop&q=80"),
			Gallery: schema.Gallery{
				schema.ImageItem{Src: unsplash + "photo-1529390003868-6c04176d091e?auto=format&fit=crop&q=80"},
				schema.VideoItem{Src: "/videos/community-empowerment.mp4"},
			},
		},
		{
			Title:       "Disability Advocacy",
			Description: "Championing policy changes and rights for persons with disabilities.",
			Category:    "advocacy",
			ImageURL:    schema.Ptr(unsplash + "photo-1573497019940-1c28c88b4f3e?auto=format&fit=crop&q=80"),
		},
	}
}

// DefaultStories returns the seed Stories without ids, in display order.
func DefaultStories() []schema.Story {
	return []schema.Story{
		{
			Title:           "Finding My Voice",
			Content:         "Through the advocacy program, I learned to speak up for my rights and now mentor others.",
			BeneficiaryName: "Sarah M.",
			ImageURL:        schema.Ptr(unsplash + "photo-1531123897727-8f129e1688ce?auto=format&fit=crop&q=80"),
		},
		{
			Title:           "Skills for Life",
			Content:         "The vocational training gave me the skills to start my own tailoring business.",
			BeneficiaryName: "David O.",
			ImageURL:        schema.Ptr(unsplash + "photo-1529390003868-6c04176d091e?auto=format&fit=crop&q=80"),
		},
	}
}

// cloneProgram copies the slice and pointer fields so callers cannot mutate
// what a store holds.
func cloneProgram(p schema.Program) schema.Program {
	if p.ImageURL != nil {
		p.ImageURL = schema.Ptr(*p.ImageURL)
	}
	p.Gallery = slices.Clone(p.Gallery)
	return p
}

func cloneStory(s schema.Story) schema.Story {
	if s.ImageURL != nil {
		s.ImageURL = schema.Ptr(*s.ImageURL)
	}
	return s
}
