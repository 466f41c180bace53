package models

import (
	"encoding/json"
)

// 即時頻道的事件名稱
const (
	EventQuizStatus     = "quiz-status"
	EventStatusChange   = "status-change"
	EventHostInfo       = "host-info"
	EventQuestionResult = "question-result"
	EventAck            = "ack"
)

// Event 代表一個由伺服器推送的即時事件
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// ClientMessage 代表一個由客戶端送來的即時消息
// Data 延遲到確定事件類型後才解析
type ClientMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// StatusChange 是主持人發出的回合控制命令
// 欄位皆為選填，沒有給的欄位不會被更動
type StatusChange struct {
	IsActive      *bool `json:"is_active,omitempty"`
	Round         *uint `json:"round,omitempty"`
	RemainingTime *int  `json:"remaining_time,omitempty"`
}

// Ack 是對 status-change 命令的回覆
type Ack struct {
	Success bool `json:"success"`
}

// HostInfo 是定期推送給主持人的連線統計
type HostInfo struct {
	NumStudents int `json:"num_students"`
}

// QuestionResult 是回合結束後廣播的統計結果
type QuestionResult struct {
	Round uint `json:"round"`
	// 每個選項被多少比例的在線學生選擇（0.00 - 1.00）
	OptionPercentages map[uint]float64 `json:"option_percentages"`
	TopClasses        []SchoolClass    `json:"top_3_classes"`
}
