package domain

// Quote is a catalog quotation and its author.
type Quote struct {
	Text   string `json:"text" yaml:"text" mapstructure:"text"`
	Author string `json:"author" yaml:"author" mapstructure:"author"`
}
