package server

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemStatusResponse reports process and host health alongside
// database counts and scheduled job state
type SystemStatusResponse struct {
	Status    string        `json:"status"`
	UptimeSec int64         `json:"uptime_sec"`
	Host      HostStats     `json:"host"`
	Process   ProcessStats  `json:"process"`
	Database  DatabaseStats `json:"database"`
	Jobs      []JobStatus   `json:"jobs"`
}

// HostStats holds host-level resource usage
type HostStats struct {
	CPUPercent float64 `json:"cpu_percent"`
	RAMPercent float64 `json:"ram_percent"`
	RAMUsedMB  float64 `json:"ram_used_mb"`
	RAMTotalMB float64 `json:"ram_total_mb"`
}

// ProcessStats holds Go runtime statistics
type ProcessStats struct {
	Goroutines int    `json:"goroutines"`
	AllocMB    uint64 `json:"alloc_mb"`
	SysMB      uint64 `json:"sys_mb"`
	NumGC      uint32 `json:"num_gc"`
}

// DatabaseStats holds row counts and file size of the SQLite store
type DatabaseStats struct {
	ETFCount      int     `json:"etf_count"`
	HoldingCount  int     `json:"holding_count"`
	SnapshotCount int     `json:"snapshot_count"`
	SizeMB        float64 `json:"size_mb"`
}

// JobStatus describes one scheduled background job
type JobStatus struct {
	Name     string `json:"name"`
	Schedule string `json:"schedule"`
	NextRun  string `json:"next_run,omitempty"`
}

// handleSystemStatus handles GET /api/system/status
func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	s.log.Debug().Msg("Getting system status")

	response := SystemStatusResponse{
		Status:    "running",
		UptimeSec: int64(time.Since(s.startedAt).Seconds()),
		Host:      s.hostStats(),
		Process:   processStats(),
		Database:  s.databaseStats(),
		Jobs:      []JobStatus{},
	}

	if s.scheduler != nil {
		for _, job := range s.scheduler.Jobs() {
			response.Jobs = append(response.Jobs, JobStatus{
				Name:     job.Name,
				Schedule: job.Schedule,
				NextRun:  job.NextRun,
			})
		}
	}

	s.writeJSON(w, http.StatusOK, response)
}

// hostStats samples host CPU and memory usage. Failures are logged and
// leave the affected fields at zero.
func (s *Server) hostStats() HostStats {
	var host HostStats

	if percents, err := cpu.Percent(0, false); err != nil {
		s.log.Warn().Err(err).Msg("Failed to sample CPU usage")
	} else if len(percents) > 0 {
		host.CPUPercent = percents[0]
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to read memory stats")
	} else {
		host.RAMPercent = vm.UsedPercent
		host.RAMUsedMB = float64(vm.Used) / 1024 / 1024
		host.RAMTotalMB = float64(vm.Total) / 1024 / 1024
	}

	return host
}

func processStats() ProcessStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return ProcessStats{
		Goroutines: runtime.NumGoroutine(),
		AllocMB:    m.Alloc / 1024 / 1024,
		SysMB:      m.Sys / 1024 / 1024,
		NumGC:      m.NumGC,
	}
}

func (s *Server) databaseStats() DatabaseStats {
	var stats DatabaseStats

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM etfs", &stats.ETFCount},
		{"SELECT COUNT(*) FROM holdings", &stats.HoldingCount},
		{"SELECT COUNT(*) FROM portfolio_snapshots", &stats.SnapshotCount},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query).Scan(c.dest); err != nil {
			s.log.Warn().Err(err).Str("query", c.query).Msg("Failed to count rows")
		}
	}

	if info, err := os.Stat(s.db.Path()); err == nil {
		stats.SizeMB = float64(info.Size()) / 1024 / 1024
	}

	return stats
}
