package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/asiaagro/silage-backend/internal/cache"
)

// Server is the ops dashboard served on its own port, away from the API.
// It polls the database and host, raises alerts when something degrades
// and pushes them to connected websocket clients.
type Server struct {
	db         *pgxpool.Pool
	httpSrv    *http.Server
	alerts     []Alert
	nextID     int
	alertsMux  sync.RWMutex
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Alert
	done       chan struct{}
}

// alertHistoryLimit caps how many alerts /api/alerts keeps; older entries
// are dropped once the health ticker has raised more than this.
const alertHistoryLimit = 100

type Alert struct {
	ID        int       `json:"id"`
	Severity  string    `json:"severity"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Resolved  bool      `json:"resolved"`
}

type Stats struct {
	DatabaseStatus    string  `json:"database_status"`
	CacheStatus       string  `json:"cache_status"`
	ActiveConnections int     `json:"active_connections"`
	ResponseTime      int64   `json:"response_time_ms"`
	ActiveAlerts      int     `json:"active_alerts"`
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryPercent     float64 `json:"memory_percent"`
	DiskPercent       float64 `json:"disk_percent"`
	MemoryUsed        string  `json:"memory_used"`
	MemoryTotal       string  `json:"memory_total"`
	DiskUsed          string  `json:"disk_used"`
	DiskTotal         string  `json:"disk_total"`
	DBSize            string  `json:"db_size"`
	DBUptime          string  `json:"db_uptime"`

	// Business counters for the ops page header.
	SalesToday    int `json:"sales_today"`
	StockInToday  int `json:"stock_in_today"`
	ExpensesToday int `json:"expenses_today"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewServer(db *pgxpool.Pool, port int) *Server {
	s := &Server{
		db:        db,
		alerts:    make([]Alert, 0),
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Alert, 16),
		done:      make(chan struct{}),
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/stats", s.getStats).Methods("GET")
	r.HandleFunc("/api/alerts", s.getAlerts).Methods("GET")
	r.HandleFunc("/ws", s.handleWebSocket)

	// No WriteTimeout here, the websocket feed is long-lived.
	s.httpSrv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) Start() {
	go s.handleBroadcast()
	go s.monitorHealth()

	log.Printf("[Monitoring] dashboard running on %s", s.httpSrv.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[Monitoring] server stopped: %v", err)
	}
}

// Shutdown stops the health ticker and drains the dashboard listener.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.done)
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	stats := s.collectStats()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (s *Server) collectStats() Stats {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := s.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	dbStatus := "healthy"
	if err != nil {
		dbStatus = "unhealthy"
	}

	cacheStatus := "healthy"
	if !cache.IsHealthy() {
		cacheStatus = "degraded"
	}

	var activeConns int
	s.db.QueryRow(ctx, "SELECT count(*) FROM pg_stat_activity").Scan(&activeConns)

	var dbSizeBytes int64
	s.db.QueryRow(ctx, "SELECT pg_database_size(current_database())").Scan(&dbSizeBytes)

	var uptimeSec int
	s.db.QueryRow(ctx, "SELECT EXTRACT(EPOCH FROM (NOW() - pg_postmaster_start_time()))::int").Scan(&uptimeSec)

	var salesToday, stockToday, expensesToday int
	s.db.QueryRow(ctx, "SELECT count(*) FROM sales WHERE created_at::date = CURRENT_DATE").Scan(&salesToday)
	s.db.QueryRow(ctx, "SELECT count(*) FROM stock_in WHERE created_at::date = CURRENT_DATE").Scan(&stockToday)
	s.db.QueryRow(ctx, "SELECT count(*) FROM expenses WHERE created_at::date = CURRENT_DATE").Scan(&expensesToday)

	cpuPercents, _ := cpu.Percent(time.Second, false)
	cpuPercent := 0.0
	if len(cpuPercents) > 0 {
		cpuPercent = cpuPercents[0]
	}

	memStats, _ := mem.VirtualMemory()
	diskStats, _ := disk.Usage("/")

	s.alertsMux.RLock()
	activeAlertCount := 0
	for _, alert := range s.alerts {
		if !alert.Resolved {
			activeAlertCount++
		}
	}
	s.alertsMux.RUnlock()

	return Stats{
		DatabaseStatus:    dbStatus,
		CacheStatus:       cacheStatus,
		ActiveConnections: activeConns,
		ResponseTime:      responseTime,
		ActiveAlerts:      activeAlertCount,
		CPUPercent:        cpuPercent,
		MemoryPercent:     memStats.UsedPercent,
		DiskPercent:       diskStats.UsedPercent,
		MemoryUsed:        formatBytes(memStats.Used),
		MemoryTotal:       formatBytes(memStats.Total),
		DiskUsed:          formatBytes(diskStats.Used),
		DiskTotal:         formatBytes(diskStats.Total),
		DBSize:            fmt.Sprintf("%.2f GB", float64(dbSizeBytes)/(1024*1024*1024)),
		DBUptime:          formatUptime(uptimeSec),
		SalesToday:        salesToday,
		StockInToday:      stockToday,
		ExpensesToday:     expensesToday,
	}
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}

func formatUptime(seconds int) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func (s *Server) getAlerts(w http.ResponseWriter, r *http.Request) {
	s.alertsMux.RLock()
	defer s.alertsMux.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.alerts)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[Monitoring] websocket upgrade error:", err)
		return
	}
	defer conn.Close()

	s.clientsMux.Lock()
	s.clients[conn] = true
	s.clientsMux.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.clientsMux.Lock()
			delete(s.clients, conn)
			s.clientsMux.Unlock()
			break
		}
	}
}

func (s *Server) handleBroadcast() {
	for alert := range s.broadcast {
		s.clientsMux.Lock()
		for client := range s.clients {
			if err := client.WriteJSON(alert); err != nil {
				client.Close()
				delete(s.clients, client)
			}
		}
		s.clientsMux.Unlock()
	}
}

// raiseAlert records a new alert unless one of the same type is still
// open, so a condition that persists across ticks yields a single entry.
func (s *Server) raiseAlert(severity, alertType, message string) {
	s.alertsMux.Lock()
	for i := range s.alerts {
		if s.alerts[i].Type == alertType && !s.alerts[i].Resolved {
			s.alertsMux.Unlock()
			return
		}
	}

	s.nextID++
	alert := Alert{
		ID:        s.nextID,
		Severity:  severity,
		Type:      alertType,
		Message:   message,
		Timestamp: time.Now(),
	}
	s.alerts = append(s.alerts, alert)
	if len(s.alerts) > alertHistoryLimit {
		s.alerts = s.alerts[len(s.alerts)-alertHistoryLimit:]
	}
	s.alertsMux.Unlock()

	// Never block the health ticker on a slow websocket consumer.
	select {
	case s.broadcast <- alert:
	default:
	}
}

// resolveAlert closes every open alert of the given type once the
// condition clears.
func (s *Server) resolveAlert(alertType string) {
	s.alertsMux.Lock()
	defer s.alertsMux.Unlock()

	for i := range s.alerts {
		if s.alerts[i].Type == alertType && !s.alerts[i].Resolved {
			s.alerts[i].Resolved = true
		}
	}
}

func (s *Server) monitorHealth() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
		}

		stats := s.collectStats()

		if stats.DatabaseStatus == "unhealthy" {
			s.raiseAlert("critical", "database_down", "Database is unreachable")
		} else {
			s.resolveAlert("database_down")
		}
		if stats.ResponseTime > 1000 {
			s.raiseAlert("warning", "high_latency",
				fmt.Sprintf("Database response time: %dms", stats.ResponseTime))
		} else {
			s.resolveAlert("high_latency")
		}
		if stats.CacheStatus != "healthy" {
			s.raiseAlert("warning", "cache_degraded", "Redis is unavailable, summaries served from the database")
		} else {
			s.resolveAlert("cache_degraded")
		}
	}
}
