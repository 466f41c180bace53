package models

// QuizStatus 表示測驗的即時狀態，整個系統只有一筆（id = 1）
// 只有 QuizService 會修改它，任何連線的客戶端都可以讀取
type QuizStatus struct {
	ID            uint  `gorm:"primaryKey" json:"-"`
	IsActive      bool  `json:"is_active"`
	Round         *uint `json:"round"`          // 目前回合（題目 ID），沒有回合時為 null
	RemainingTime *int  `json:"remaining_time"` // 剩餘秒數，只在回合進行中有值
}

// QuizSettings 表示測驗的設定，整個系統只有一筆（id = 1）
// 由外部管理介面修改，對 QuizService 而言是唯讀的
type QuizSettings struct {
	ID                uint `gorm:"primaryKey" json:"-"`
	RoundTimeInterval int  `json:"round_time_interval"` // 新回合的預設倒數秒數
}
