package document

// TextStyle captures the run formatting a renderer applies to an element.
type TextStyle struct {
	Size      float64
	Bold      bool
	Underline bool
	Center    bool
	Indent    float64
	SpaceTop  float64
	SpaceLine float64
}

const (
	PageSizeA4      = "A4"
	PageMargin      = 40
	DefaultFont     = "Helvetica"
	DefaultFontSize = 12
	HeaderSize      = 18
	TitleSize       = 14
	BulletIndent    = 10
	SectionGap      = 20
)

// StyleMap centralizes the formatting of CV elements.
var StyleMap = map[string]TextStyle{
	"header": {
		Size:      HeaderSize,
		Bold:      true,
		Center:    true,
		SpaceLine: 10,
	},
	"sectionTitle": {
		Size:      TitleSize,
		Bold:      true,
		Underline: true,
		SpaceTop:  SectionGap,
		SpaceLine: 5,
	},
	"text": {
		Size:      DefaultFontSize,
		SpaceLine: 2,
	},
	"bullet": {
		Size:      DefaultFontSize,
		Indent:    BulletIndent,
		SpaceLine: 2,
	},
}
