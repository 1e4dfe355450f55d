package model

// Member representa um integrante do grupo de estudos.
// name e instituicao são obrigatórios; os demais campos são opcionais e
// serializam como ausentes (não como string vazia) quando não preenchidos.
type Member struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Instituicao     string  `json:"instituicao"`
	AreaPesquisa    *string `json:"areaPesquisa,omitempty"`
	CurriculoLattes *string `json:"curriculoLattes,omitempty"`
	ImageURL        *string `json:"imageUrl,omitempty"`
}
