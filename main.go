// Package main provides the entry point for the Hat Studio application.
package main

import (
	"flag"
	"log"
	"strings"
	"time"

	"hat-studio/internal/app"
	"hat-studio/internal/brand"
	"hat-studio/internal/version"
	"hat-studio/ui/mainwindow"
	"hat-studio/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	brandFlag := flag.String("brand", "", "brand skin to run ("+strings.Join(brand.Names(), ", ")+") or a path to a brand YAML file")
	assetRoot := flag.String("assets", "assets", "directory holding the per-brand asset directories")
	flag.Parse()

	appPrefs := prefs.Load()

	spec, err := resolveBrand(*brandFlag, appPrefs)
	if err != nil {
		log.Fatalf("Brand: %v", err)
	}
	appPrefs.SetString(prefs.KeyLastBrand, spec.Name)

	log.Printf("Starting %s v%s", spec.Title, version.Version)

	fyneApp := fyneapp.New()
	fyneApp.Settings().SetTheme(app.NewBrandTheme(spec.Accent))

	state := app.NewState(spec, *assetRoot)
	win := mainwindow.New(fyneApp, state, appPrefs)

	// Handle command line arguments
	if flag.NArg() > 0 {
		photoPath := flag.Arg(0)
		if err := state.LoadPhoto(photoPath); err != nil {
			log.Printf("Failed to load photo %s: %v", photoPath, err)
		}
	}

	setupHotReload(win)

	win.ShowAndRun()
}

// resolveBrand picks the brand spec from the flag, falling back to the last
// used brand and then the default.
func resolveBrand(flagValue string, appPrefs *prefs.Prefs) (brand.Spec, error) {
	name := flagValue
	if name == "" {
		name = appPrefs.String(prefs.KeyLastBrand)
	}
	if name == "" {
		return brand.PartnerSpec(), nil
	}

	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return brand.LoadFile(name)
	}
	return brand.GetSpec(name)
}

// setupHotReload configures automatic restart detection when the binary is
// recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.StartupTime().Format("15:04:05"))

	reloader.OnTick(func() {
		win.SavePreferencesIfChanged()
	})

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				log.Println("Hot reload: saving preferences before restart...")
				win.SavePreferences()
				log.Println("Hot reload: restarting...")
				if err := reloader.Restart(); err != nil {
					log.Printf("Hot reload: restart failed: %v", err)
				}
			}, win.Window)
	})

	reloader.Start()
}
