package document

import (
	"strings"

	"github.com/Pratikmalviya12/template-designer/pkg/errors"
)

// Kind identifies the content type of a component.
type Kind string

// Component kinds. The first nine form the palette every template supports;
// the rest are layout helpers and raw markup.
const (
	KindText      Kind = "text"
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
	KindImage     Kind = "image"
	KindButton    Kind = "button"
	KindVideo     Kind = "video"
	KindTimer     Kind = "timer"
	KindSocial    Kind = "social"
	KindMenu      Kind = "menu"

	KindHTML        Kind = "html"
	KindSocialShare Kind = "socialShare"
	KindHeader      Kind = "header"
	KindFooter      Kind = "footer"
	KindSpacer      Kind = "spacer"
	KindDivider     Kind = "divider"
)

var kindOrder = []Kind{
	KindText, KindHeading, KindParagraph, KindImage, KindButton,
	KindVideo, KindTimer, KindSocial, KindMenu,
	KindHTML, KindSocialShare, KindHeader, KindFooter, KindSpacer, KindDivider,
}

var kindLabels = map[Kind]string{
	KindText:        "Text",
	KindHeading:     "Heading",
	KindParagraph:   "Paragraph",
	KindImage:       "Image",
	KindButton:      "Button",
	KindVideo:       "Video",
	KindTimer:       "Timer",
	KindSocial:      "Social",
	KindMenu:        "Menu",
	KindHTML:        "HTML",
	KindSocialShare: "Social Share",
	KindHeader:      "Header",
	KindFooter:      "Footer",
	KindSpacer:      "Spacer",
	KindDivider:     "Divider",
}

// Kinds returns every known kind in palette order.
func Kinds() []Kind {
	out := make([]Kind, len(kindOrder))
	copy(out, kindOrder)
	return out
}

// Known reports whether k is one of the predefined kinds.
func (k Kind) Known() bool {
	_, ok := kindLabels[k]
	return ok
}

// Label returns a human-readable name for the palette.
func (k Kind) Label() string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return string(k)
}

// String implements fmt.Stringer.
func (k Kind) String() string { return string(k) }

// ParseKind resolves a user-supplied kind name, ignoring case and
// separators so "social-share" and "SocialShare" both match.
func ParseKind(s string) (Kind, error) {
	norm := normalizeKind(s)
	for _, k := range kindOrder {
		if normalizeKind(string(k)) == norm {
			return k, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidKind, "unknown component kind: %q", s)
}

func normalizeKind(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}
