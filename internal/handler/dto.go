package handler

type ArticleResponse struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	Date  string `json:"date"`
}

type ArticlesResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Total    int               `json:"total"`
	Oldest   string            `json:"oldest,omitempty"`
	Newest   string            `json:"newest,omitempty"`
}
