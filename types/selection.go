package types

// SelectionState 批量删除的选择状态
type SelectionState struct {
	Active   bool     `json:"active"`
	Selected []string `json:"selected"`
}

// DeleteSelectionResponse 批量删除结果
type DeleteSelectionResponse struct {
	Deleted []string          `json:"deleted"`
	Failed  map[string]string `json:"failed,omitempty"`
}
