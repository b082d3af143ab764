package domain

// Category representa uma categoria de produtos
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewCategory é o corpo de criação de categoria
type NewCategory struct {
	Name string `json:"name" validate:"required,max=120"`
}

// CategoryCreated é a resposta da criação de categoria
type CategoryCreated struct {
	Message  string   `json:"message"`
	Category Category `json:"category"`
}
