package models

// SectionType discriminates the kinds of renderable blocks a page can hold.
// The set is closed: the builder only ever instantiates these seven.
type SectionType string

const (
	SectionHero       SectionType = "hero"
	SectionText       SectionType = "text"
	SectionFeatures   SectionType = "features"
	SectionProperties SectionType = "properties"
	SectionGallery    SectionType = "gallery"
	SectionContact    SectionType = "contact"
	SectionCTA        SectionType = "cta"
)

// AllSectionTypes lists every section type in presentation order.
var AllSectionTypes = []SectionType{
	SectionHero,
	SectionText,
	SectionFeatures,
	SectionProperties,
	SectionGallery,
	SectionContact,
	SectionCTA,
}

// Valid reports whether t is a member of the closed type set.
func (t SectionType) Valid() bool {
	for _, known := range AllSectionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Section is one renderable block on a builder-managed page.
// Order is authoritative for render position; insertion order means nothing.
type Section struct {
	ID      string      `json:"id"`
	Type    SectionType `json:"type"`
	Order   int         `json:"order"`
	Visible bool        `json:"visible"`
	IsHome  bool        `json:"is_home"`
	Data    SectionData `json:"data"`
}

// SectionData is the tagged payload of a Section. Exactly one variant
// pointer is non-nil, and it must match the section's Type.
type SectionData struct {
	Hero       *HeroData       `json:"hero,omitempty"`
	Text       *TextData       `json:"text,omitempty"`
	Features   *FeaturesData   `json:"features,omitempty"`
	Properties *PropertiesData `json:"properties,omitempty"`
	Gallery    *GalleryData    `json:"gallery,omitempty"`
	Contact    *ContactData    `json:"contact,omitempty"`
	CTA        *CTAData        `json:"cta,omitempty"`
}

// HeroData is the payload for the landing hero block.
type HeroData struct {
	Title      string     `json:"title"`
	Subtitle   string     `json:"subtitle"`
	ButtonText string     `json:"buttonText"`
	Stats      []HeroStat `json:"stats"`
}

// HeroStat is one headline figure shown under the hero title.
type HeroStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// TextData is the payload for a free-text block.
type TextData struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// FeaturesData is the payload for the feature-grid block.
type FeaturesData struct {
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle"`
	Items    []FeatureItem `json:"items"`
}

// FeatureItem is a single entry in the feature grid.
type FeatureItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PropertiesData is the payload for the portfolio listing block.
type PropertiesData struct {
	Title string `json:"title"`
}

// GalleryData is the payload for the image gallery block.
type GalleryData struct {
	Title  string         `json:"title"`
	Images []GalleryImage `json:"images"`
}

// GalleryImage is one gallery entry.
type GalleryImage struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// ContactData is the payload for the contact-form block.
type ContactData struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// CTAData is the payload for the call-to-action block.
type CTAData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ButtonText  string `json:"buttonText"`
}

// DefaultData returns the template payload a freshly added section of the
// given type starts from. The placeholder copy is fixed product text and
// must not be changed casually — published pages render it verbatim until
// the agent edits the section.
func DefaultData(t SectionType) SectionData {
	switch t {
	case SectionHero:
		return SectionData{Hero: &HeroData{
			Title:      "Başlık Giriniz",
			Subtitle:   "Alt başlık giriniz",
			ButtonText: "Hemen İletişime Geçin",
			Stats:      []HeroStat{},
		}}
	case SectionText:
		return SectionData{Text: &TextData{
			Title:   "",
			Content: "Metin içeriği buraya...",
		}}
	case SectionFeatures:
		return SectionData{Features: &FeaturesData{
			Title:    "Özellikler",
			Subtitle: "",
			Items: []FeatureItem{
				{Title: "Özellik 1", Description: "Açıklama giriniz"},
				{Title: "Özellik 2", Description: "Açıklama giriniz"},
				{Title: "Özellik 3", Description: "Açıklama giriniz"},
			},
		}}
	case SectionProperties:
		return SectionData{Properties: &PropertiesData{
			Title: "Portföy",
		}}
	case SectionGallery:
		return SectionData{Gallery: &GalleryData{
			Title:  "Galeri",
			Images: []GalleryImage{},
		}}
	case SectionContact:
		return SectionData{Contact: &ContactData{
			Title:    "İletişim",
			Subtitle: "Bizimle iletişime geçin",
		}}
	case SectionCTA:
		return SectionData{CTA: &CTAData{
			Title:       "Hemen Başlayın",
			Description: "Size yardımcı olmak için buradayız",
			ButtonText:  "İletişime Geçin",
		}}
	}
	return SectionData{}
}
