package main

import (
	"github.com/MachariaP/RiffTrax-v2/internal/app"
	"github.com/MachariaP/RiffTrax-v2/internal/config"
)

func main() {
	app.Go(config.Load())
}
