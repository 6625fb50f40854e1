package document

import "time"

// PlaceholderImage is the media source new image and video components start with.
const PlaceholderImage = "https://via.placeholder.com/600x300"

// DefaultTimerFormat is the countdown format new timers start with.
const DefaultTimerFormat = "dd:hh:mm:ss"

// Defaults is the initial payload of a newly added component.
type Defaults struct {
	Content    string
	Style      Style
	Properties Properties
}

// DefaultsFor returns the starting payload for kind. Timers count down to
// now. Every call returns fresh maps and slices, so callers may modify the
// result freely. Unknown kinds get an empty payload.
func DefaultsFor(kind Kind, now time.Time) Defaults {
	switch kind {
	case KindText:
		return Defaults{
			Content: "Add your text here",
			Style:   bodyTextStyle(),
		}
	case KindParagraph:
		return Defaults{
			Content: "Add your paragraph text here",
			Style:   bodyTextStyle(),
		}
	case KindHeading:
		return Defaults{
			Content:    "Heading",
			Style:      NewStyle("fontSize", "24px", "fontWeight", "bold", "color", "#222222"),
			Properties: Properties{Level: "h2"},
		}
	case KindImage:
		return Defaults{
			Content: PlaceholderImage,
			Style:   NewStyle("width", "100%", "height", "100%"),
			Properties: Properties{
				Src:        PlaceholderImage,
				AltText:    "Image description",
				Responsive: true,
			},
		}
	case KindButton:
		return Defaults{
			Content: "Click Me",
			Style: NewStyle(
				"padding", "8px 16px",
				"backgroundColor", "#1976d2",
				"color", "#ffffff",
				"borderRadius", "4px",
			),
		}
	case KindVideo:
		return Defaults{
			Style: NewStyle("width", "100%", "height", "100%", "objectFit", "cover", "display", "block"),
			Properties: Properties{
				Src:      PlaceholderImage,
				Controls: true,
			},
		}
	case KindTimer:
		return Defaults{
			Properties: Properties{
				EndDate: now.UTC().Format(time.RFC3339),
				Format:  DefaultTimerFormat,
			},
		}
	case KindMenu:
		return Defaults{
			Properties: Properties{
				MenuItems: []MenuItem{
					{Text: "Home", URL: "#"},
					{Text: "About", URL: "#"},
					{Text: "Contact", URL: "#"},
				},
			},
		}
	case KindSocial:
		return Defaults{
			Properties: Properties{
				SocialMedia: []SocialLink{
					{Type: "facebook", URL: "#", Enabled: true},
					{Type: "twitter", URL: "#", Enabled: true},
					{Type: "instagram", URL: "#", Enabled: true},
					{Type: "linkedin", URL: "#"},
					{Type: "youtube", URL: "#"},
					{Type: "pinterest", URL: "#"},
				},
			},
		}
	case KindHeader:
		return Defaults{Content: "Header"}
	case KindFooter:
		return Defaults{Content: "Footer"}
	case KindSpacer:
		return Defaults{Style: NewStyle("height", "40px")}
	}
	return Defaults{}
}

func bodyTextStyle() Style {
	return NewStyle("fontSize", "16px", "fontWeight", "normal", "color", "#333333", "lineHeight", "1.5")
}
