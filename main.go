package main

import (
	"github.com/SundayYogurt/placement_service/config"
	"github.com/SundayYogurt/placement_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
