package models

type Sample struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type NewSample struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}
