package model

// swagger:model Book
type Book struct {
	BaseModel
	Title       string `gorm:"size:255;not null;index" json:"title"`
	Author      string `gorm:"size:100;not null;index" json:"author"`
	Translator  string `gorm:"size:100" json:"translator,omitempty"`
	Illustrator string `gorm:"size:100" json:"illustrator,omitempty"`
	Publisher   string `gorm:"size:100" json:"publisher,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	CoverImage  string `gorm:"size:255" json:"coverImage,omitempty"`
	Price       int    `gorm:"default:0" json:"price"` // 单位：分
}

func (Book) TableName() string {
	return "books"
}
