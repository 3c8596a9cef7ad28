package dto

// GenerateTextRequest asks the AI writer to produce a contest submission on
// behalf of a writer. Persona is optional free text injected into the
// prompt.
type GenerateTextRequest struct {
	ContestID   uint    `json:"contest_id" validate:"required"`
	WriterID    uint    `json:"writer_id" validate:"required"`
	ModelID     string  `json:"model_id"`
	Title       string  `json:"title" validate:"required,max=255"`
	Persona     string  `json:"persona" validate:"max=4000"`
	Temperature float32 `json:"temperature" validate:"gte=0,lte=2"`
}

// GenerateTextResponse reports the produced submission. AlreadyGenerated is
// true when the writer had already generated a piece for the contest; no
// model call is made and nothing is charged in that case.
type GenerateTextResponse struct {
	SubmissionID     uint   `json:"submission_id"`
	Title            string `json:"title"`
	Text             string `json:"text"`
	Model            string `json:"model"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	CreditsCharged   int    `json:"credits_charged"`
	AlreadyGenerated bool   `json:"already_generated"`
}

// RunEvaluationRequest asks an assigned AI judge to evaluate a contest.
// TriggeredByID is the user paying for and owning the evaluation run.
type RunEvaluationRequest struct {
	ContestID      uint    `json:"contest_id" validate:"required"`
	JudgeProfileID uint    `json:"judge_profile_id" validate:"required"`
	TriggeredByID  uint    `json:"triggered_by_id" validate:"required"`
	ModelID        string  `json:"model_id"`
	Temperature    float32 `json:"temperature" validate:"gte=0,lte=2"`
}

// RunEvaluationResponse reports the confirmed votes of an evaluation run:
// submission id → place and submission id → comment, plus the audit totals.
type RunEvaluationResponse struct {
	EvaluationID     uint            `json:"evaluation_id"`
	IsReevaluation   bool            `json:"is_reevaluation"`
	Rankings         map[uint]int    `json:"rankings"`
	Comments         map[uint]string `json:"comments"`
	Model            string          `json:"model"`
	PromptTokens     int             `json:"prompt_tokens"`
	CompletionTokens int             `json:"completion_tokens"`
	CreditsCharged   int             `json:"credits_charged"`
	Cost             float64         `json:"cost"`
}
