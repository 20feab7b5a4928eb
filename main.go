package main

import (
	"embed"
	"os"

	"github.com/example/labeldrop/cmd"
	"github.com/example/labeldrop/gui"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
)

//go:embed frontend
var assets embed.FS

func main() {
	if len(os.Args) > 1 {
		cmd.Execute()
		return
	}

	app := gui.NewApp()

	err := wails.Run(&options.App{
		Title:  "LabelDrop",
		Width:  720,
		Height: 640,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup:  app.Startup,
		OnShutdown: app.Shutdown,
		Bind: []interface{}{
			app,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
