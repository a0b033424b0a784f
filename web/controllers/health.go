package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

func Health(c *gin.Context) {
	uptime, _ := host.Uptime()

	var usedPercent float64
	if vm, err := mem.VirtualMemory(); err == nil {
		usedPercent = vm.UsedPercent
	}

	sessionMapMutex.RLock()
	active := len(sessionMap)
	sessionMapMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"active_sessions":  active,
		"host_uptime_secs": uptime,
		"mem_used_percent": usedPercent,
	})
}
