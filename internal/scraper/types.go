package scraper

// Selectors описывает разметку WeBan, на которую опираются обработчики.
// Любой редизайн сайта ломает эти значения, поэтому они вынесены в YAML.
type Selectors struct {
	ReturnButton   string `yaml:"return_button"`
	ReturnText     string `yaml:"return_text"`
	CollapseItem   string `yaml:"collapse_item"`
	CollapseTitle  string `yaml:"collapse_title"`
	CollapseCount  string `yaml:"collapse_count"`
	CollapseToggle string `yaml:"collapse_toggle"`
	LessonItem     string `yaml:"lesson_item"`
	PassedClass    string `yaml:"passed_class"`
}

// DefaultSelectors returns the markup of the platform as of the 2025 redesign.
func DefaultSelectors() Selectors {
	return Selectors{
		ReturnButton:   ".comment-footer-button",
		ReturnText:     "返回列表",
		CollapseItem:   ".van-collapse-item",
		CollapseTitle:  ".van-cell__title",
		CollapseCount:  ".count",
		CollapseToggle: `.van-collapse-item__title[aria-expanded="false"]`,
		LessonItem:     ".img-texts-item",
		PassedClass:    "passed",
	}
}

// ClickRecord is a click performed on a Snapshot.
type ClickRecord struct {
	Tag   string
	Class string
	Text  string
}
