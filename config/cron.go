package config

import (
	"inventify.GO/cron/jobs"
)

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

var CronJobs = map[string]CronJob{
	"reconcile":  {Schedule: "@every 10m", Job: jobs.ReconcileJob},
	"lowstock":   {Schedule: "0 8 * * *", Job: jobs.LowStockJob},
	"searchsync": {Schedule: "@hourly", Job: jobs.SearchSyncJob},
	// Add more jobs here
}
