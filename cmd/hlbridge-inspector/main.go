//go:build uifrontend

// hlbridge-inspector is a read-only debug UI for a running hlbridge
// instance: loaded types, rooted-handle count, and the last recorded
// exception. Mirrors the teacher's cmd/aegis-ui architecture — a local
// HTTP server backs a Wails webview window rather than the webview
// talking to the VM directly, gated by the same uifrontend build tag.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net"
	"net/http"

	"github.com/wailsapp/wails/v3/pkg/application"

	"github.com/corvidhx/hlbridge/internal/types"
	"github.com/corvidhx/hlbridge/internal/vm"
	uifs "github.com/corvidhx/hlbridge/ui"
)

func main() {
	modulePath := flag.String("module", "", "path to a .hl bytecode file to load and inspect")
	flag.Parse()
	if *modulePath == "" {
		log.Fatal("hlbridge-inspector: -module is required")
	}

	inst, err := vm.Create()
	if err != nil {
		log.Fatalf("create instance: %v", err)
	}
	if err := inst.Init(nil); err != nil {
		log.Fatalf("init VM runtime: %v", err)
	}
	if err := inst.LoadFile(*modulePath); err != nil {
		log.Fatalf("load %s: %v", *modulePath, err)
	}
	if err := inst.CallEntry(); err != nil {
		log.Fatalf("call entry: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		writeState(w, inst)
	})
	mux.Handle("/", http.FileServer(http.FS(uifs.Frontend)))

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	addr := listener.Addr().String()
	go http.Serve(listener, mux)

	app := application.New(application.Options{Name: "hlbridge inspector"})
	app.Window.NewWithOptions(application.WebviewWindowOptions{
		Title:  "hlbridge inspector",
		URL:    "http://" + addr + "/frontend/dist/index.html",
		Width:  900,
		Height: 600,
	})

	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}

type stateResponse struct {
	State         string      `json:"state"`
	Types         []typeEntry `json:"types"`
	RootedHandles int         `json:"rootedHandles"`
	Exception     string      `json:"exception,omitempty"`
	RecentEvents  []vm.Event  `json:"recentEvents"`
}

type typeEntry struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func writeState(w http.ResponseWriter, inst *vm.Instance) {
	resp := stateResponse{
		State:         inst.State(),
		RootedHandles: inst.Handles.Len(),
		RecentEvents:  inst.RecentEvents(),
	}
	if inst.Exceptions.HasException() {
		resp.Exception = inst.Exceptions.Message()
	}
	if inst.Types != nil {
		inst.Types.ListTypes(func(d *types.Descriptor) bool {
			resp.Types = append(resp.Types, typeEntry{Name: d.Name, Kind: d.Kind.String()})
			return true
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
