package document

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"

	"github.com/Pratikmalviya12/template-designer/pkg/errors"
)

// Property names understood by [Properties.Set] and [Properties.Get].
// Any other name is stored in Properties.Extra.
const (
	PropSrc         = "src"
	PropAltText     = "altText"
	PropResponsive  = "responsive"
	PropLevel       = "level"
	PropURL         = "url"
	PropPoster      = "poster"
	PropPreload     = "preload"
	PropControls    = "controls"
	PropAutoplay    = "autoplay"
	PropLoop        = "loop"
	PropMuted       = "muted"
	PropPlaysInline = "playsInline"
	PropEndDate     = "endDate"
	PropFormat      = "format"
	PropMenuItems   = "menuItems"
	PropSocialMedia = "socialMedia"
)

// MenuItem is one link of a menu component.
type MenuItem struct {
	Text string `json:"text" yaml:"text"`
	URL  string `json:"url" yaml:"url"`
}

// SocialLink is one network entry of a social component.
// Disabled entries are kept so they can be toggled back on.
type SocialLink struct {
	Type    string `json:"type" yaml:"type"`
	URL     string `json:"url" yaml:"url"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// Properties holds kind-specific settings of a component.
//
// Which fields are meaningful depends on the component's [Kind]:
//
//	image    Src, AltText, Responsive
//	heading  Level ("h1".."h6")
//	button   URL
//	video    Src, Poster, Preload, Controls, Autoplay, Loop, Muted, PlaysInline
//	timer    EndDate, Format
//	menu     MenuItems
//	social   SocialMedia
//
// Extra carries custom fields that have no typed home.
type Properties struct {
	Src        string `json:"src,omitempty" yaml:"src,omitempty"`
	AltText    string `json:"altText,omitempty" yaml:"altText,omitempty"`
	Responsive bool   `json:"responsive,omitempty" yaml:"responsive,omitempty"`

	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`

	Poster      string `json:"poster,omitempty" yaml:"poster,omitempty"`
	Preload     string `json:"preload,omitempty" yaml:"preload,omitempty"`
	Controls    bool   `json:"controls,omitempty" yaml:"controls,omitempty"`
	Autoplay    bool   `json:"autoplay,omitempty" yaml:"autoplay,omitempty"`
	Loop        bool   `json:"loop,omitempty" yaml:"loop,omitempty"`
	Muted       bool   `json:"muted,omitempty" yaml:"muted,omitempty"`
	PlaysInline bool   `json:"playsInline,omitempty" yaml:"playsInline,omitempty"`

	EndDate string `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Format  string `json:"format,omitempty" yaml:"format,omitempty"`

	MenuItems   []MenuItem   `json:"menuItems,omitempty" yaml:"menuItems,omitempty"`
	SocialMedia []SocialLink `json:"socialMedia,omitempty" yaml:"socialMedia,omitempty"`

	Extra map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Clone returns a deep copy.
func (p Properties) Clone() Properties {
	out := p
	out.MenuItems = slices.Clone(p.MenuItems)
	out.SocialMedia = slices.Clone(p.SocialMedia)
	out.Extra = maps.Clone(p.Extra)
	return out
}

// Equal reports whether two property sets hold the same values.
// A nil and an empty list or map compare equal.
func (p Properties) Equal(o Properties) bool {
	return p.Src == o.Src && p.AltText == o.AltText && p.Responsive == o.Responsive &&
		p.Level == o.Level && p.URL == o.URL &&
		p.Poster == o.Poster && p.Preload == o.Preload &&
		p.Controls == o.Controls && p.Autoplay == o.Autoplay && p.Loop == o.Loop &&
		p.Muted == o.Muted && p.PlaysInline == o.PlaysInline &&
		p.EndDate == o.EndDate && p.Format == o.Format &&
		slices.Equal(p.MenuItems, o.MenuItems) &&
		slices.Equal(p.SocialMedia, o.SocialMedia) &&
		maps.Equal(p.Extra, o.Extra)
}

// HeadingLevel returns Level when it names h1..h6, otherwise "h2".
func (p Properties) HeadingLevel() string {
	if ValidHeadingLevel(p.Level) {
		return p.Level
	}
	return "h2"
}

// ValidHeadingLevel reports whether level is one of h1..h6.
func ValidHeadingLevel(level string) bool {
	return len(level) == 2 && level[0] == 'h' && level[1] >= '1' && level[1] <= '6'
}

// Set assigns one property from its string form. Booleans accept anything
// strconv.ParseBool does; menuItems and socialMedia take a JSON array.
// Unknown names are stored in Extra.
func (p *Properties) Set(name, value string) error {
	switch name {
	case PropSrc:
		p.Src = value
	case PropAltText:
		p.AltText = value
	case PropLevel:
		if !ValidHeadingLevel(value) {
			return errors.New(errors.ErrCodeInvalidInput, "heading level must be h1..h6, got %q", value)
		}
		p.Level = value
	case PropURL:
		p.URL = value
	case PropPoster:
		p.Poster = value
	case PropPreload:
		p.Preload = value
	case PropEndDate:
		p.EndDate = value
	case PropFormat:
		p.Format = value
	case PropResponsive, PropControls, PropAutoplay, PropLoop, PropMuted, PropPlaysInline:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "property %s expects a boolean", name)
		}
		*p.boolField(name) = b
	case PropMenuItems:
		var items []MenuItem
		if err := json.Unmarshal([]byte(value), &items); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "property %s expects a JSON array", name)
		}
		p.MenuItems = items
	case PropSocialMedia:
		var links []SocialLink
		if err := json.Unmarshal([]byte(value), &links); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "property %s expects a JSON array", name)
		}
		p.SocialMedia = links
	default:
		if name == "" {
			return errors.New(errors.ErrCodeInvalidInput, "property name cannot be empty")
		}
		if p.Extra == nil {
			p.Extra = make(map[string]string)
		}
		p.Extra[name] = value
	}
	return nil
}

// Get returns the string form of one property and whether it is set.
// Booleans are always reported as set.
func (p Properties) Get(name string) (string, bool) {
	switch name {
	case PropSrc:
		return p.Src, p.Src != ""
	case PropAltText:
		return p.AltText, p.AltText != ""
	case PropLevel:
		return p.Level, p.Level != ""
	case PropURL:
		return p.URL, p.URL != ""
	case PropPoster:
		return p.Poster, p.Poster != ""
	case PropPreload:
		return p.Preload, p.Preload != ""
	case PropEndDate:
		return p.EndDate, p.EndDate != ""
	case PropFormat:
		return p.Format, p.Format != ""
	case PropResponsive, PropControls, PropAutoplay, PropLoop, PropMuted, PropPlaysInline:
		return strconv.FormatBool(*p.boolField(name)), true
	case PropMenuItems:
		if len(p.MenuItems) == 0 {
			return "", false
		}
		data, _ := json.Marshal(p.MenuItems)
		return string(data), true
	case PropSocialMedia:
		if len(p.SocialMedia) == 0 {
			return "", false
		}
		data, _ := json.Marshal(p.SocialMedia)
		return string(data), true
	}
	v, ok := p.Extra[name]
	return v, ok
}

func (p *Properties) boolField(name string) *bool {
	switch name {
	case PropResponsive:
		return &p.Responsive
	case PropControls:
		return &p.Controls
	case PropAutoplay:
		return &p.Autoplay
	case PropLoop:
		return &p.Loop
	case PropMuted:
		return &p.Muted
	}
	return &p.PlaysInline
}

// Field is a named property value, as listed by [Properties.Fields].
type Field struct {
	Name  string
	Value string
}

// kindFields lists the typed properties relevant to each kind.
var kindFields = map[Kind][]string{
	KindImage:   {PropSrc, PropAltText, PropResponsive},
	KindHeading: {PropLevel},
	KindButton:  {PropURL},
	KindVideo:   {PropSrc, PropPoster, PropPreload, PropControls, PropAutoplay, PropLoop, PropMuted, PropPlaysInline},
	KindTimer:   {PropEndDate, PropFormat},
	KindMenu:    {PropMenuItems},
	KindSocial:  {PropSocialMedia},
}

// PropertyNames returns the typed property names relevant to kind.
func PropertyNames(kind Kind) []string {
	return slices.Clone(kindFields[kind])
}

// Fields lists the properties relevant to kind followed by Extra entries in
// key order. Unset string properties are omitted.
func (p Properties) Fields(kind Kind) []Field {
	var out []Field
	for _, name := range kindFields[kind] {
		if v, ok := p.Get(name); ok {
			out = append(out, Field{Name: name, Value: v})
		}
	}
	for _, k := range slices.Sorted(maps.Keys(p.Extra)) {
		out = append(out, Field{Name: k, Value: p.Extra[k]})
	}
	return out
}
