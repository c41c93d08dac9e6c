package services

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// LogEntry は単一のリクエストログを表します。
type LogEntry struct {
	Timestamp    time.Time
	Path         string
	Method       string
	StatusCode   int
	ResponseTime time.Duration
}

// MonitoringService はAPIのモニタリング機能を提供します。
type MonitoringService struct {
	logs []LogEntry
	mu   sync.RWMutex
}

// NewMonitoringService は新しいMonitoringServiceを生成します。
func NewMonitoringService() *MonitoringService {
	return &MonitoringService{
		logs: make([]LogEntry, 0),
	}
}

// LogRequest はリクエストを記録します。
func (s *MonitoringService) LogRequest(entry LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, entry)
}

// LoggingMiddleware はリクエスト情報を記録するGinミドルウェアです。
// 管理系・モニタリング系のパスは集計対象から除外します。
func (s *MonitoringService) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/v1/admin") || strings.HasPrefix(path, "/api/v1/monitoring") {
			return
		}

		s.LogRequest(LogEntry{
			Timestamp:    start,
			Path:         path,
			Method:       c.Request.Method,
			StatusCode:   c.Writer.Status(),
			ResponseTime: time.Since(start),
		})
	}
}

// DashboardData はダッシュボードに表示するための集計済みデータです。
type DashboardData struct {
	TotalRequests    int                      `json:"totalRequests"`
	Endpoints        map[string]int           `json:"endpoints"`
	StatusCodes      []map[string]interface{} `json:"statusCodes"`
	AvgResponseTimes []map[string]interface{} `json:"avgResponseTimes"`
	RecentErrors     []LogEntry               `json:"recentErrors"`
}

// GetDashboardData は指定された期間のログを集計してダッシュボード用データを返します。
func (s *MonitoringService) GetDashboardData(periodHours int) DashboardData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	since := time.Now().Add(-time.Duration(periodHours) * time.Hour)

	filtered := make([]LogEntry, 0)
	for _, log := range s.logs {
		if log.Timestamp.After(since) {
			filtered = append(filtered, log)
		}
	}

	// エンドポイント別のリクエスト数
	endpoints := make(map[string]int)
	for _, log := range filtered {
		endpoints[log.Path]++
	}

	// ステータスコードのクラス別集計
	statusCodes := map[string]int{
		"2xx Success":      0,
		"4xx Client Error": 0,
		"5xx Server Error": 0,
	}
	for _, log := range filtered {
		switch {
		case log.StatusCode >= 200 && log.StatusCode < 300:
			statusCodes["2xx Success"]++
		case log.StatusCode >= 400 && log.StatusCode < 500:
			statusCodes["4xx Client Error"]++
		case log.StatusCode >= 500:
			statusCodes["5xx Server Error"]++
		}
	}
	statusCodesSlice := make([]map[string]interface{}, 0, len(statusCodes))
	for name, value := range statusCodes {
		statusCodesSlice = append(statusCodesSlice, map[string]interface{}{"name": name, "value": value})
	}

	// エンドポイント別の平均応答時間
	responseTimeSum := make(map[string]time.Duration)
	for _, log := range filtered {
		responseTimeSum[log.Path] += log.ResponseTime
	}
	avgResponseTimes := make([]map[string]interface{}, 0, len(responseTimeSum))
	for path, total := range responseTimeSum {
		avg := total.Milliseconds() / int64(endpoints[path])
		avgResponseTimes = append(avgResponseTimes, map[string]interface{}{"endpoint": path, "responseTime": avg})
	}

	// 直近のサーバーエラー（最大10件）
	recentErrors := make([]LogEntry, 0)
	for i := len(filtered) - 1; i >= 0 && len(recentErrors) < 10; i-- {
		if filtered[i].StatusCode >= 500 {
			recentErrors = append(recentErrors, filtered[i])
		}
	}

	return DashboardData{
		TotalRequests:    len(filtered),
		Endpoints:        endpoints,
		StatusCodes:      statusCodesSlice,
		AvgResponseTimes: avgResponseTimes,
		RecentErrors:     recentErrors,
	}
}
