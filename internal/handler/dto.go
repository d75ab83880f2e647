package handler

// WorkflowRequest is the body accepted by POST /workflow/run.
type WorkflowRequest struct {
	Topic       string `json:"topic"`
	MaxArticles int    `json:"max_articles"`
}

// WorkflowResponse mirrors the pipeline outcome.
type WorkflowResponse struct {
	Status            string `json:"status"`
	SummaryURL        string `json:"summary_url"`
	PRURL             string `json:"pr_url"`
	ArticlesProcessed int    `json:"articles_processed"`
}
