package app

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jwulff/postop/internal/api"

	tea "github.com/charmbracelet/bubbletea"
)

// TestLiveDashboardFlow exercises the model lifecycle against a running backend.
// Skipped unless POSTOP_LIVE_URL is set.
func TestLiveDashboardFlow(t *testing.T) {
	url := os.Getenv("POSTOP_LIVE_URL")
	if url == "" {
		t.Skip("POSTOP_LIVE_URL not set")
	}

	client := api.NewClient(url, 5*time.Second)
	m := New(client, testOptions())
	m, _ = applyUpdate(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m, _ = applyUpdate(m, m.Init()())
	if len(m.beds) == 0 {
		t.Fatal("expected beds from live backend")
	}
	fmt.Println("=== Grid ===")
	fmt.Println(m.View())

	m, cmd := applyUpdate(m, key("enter"))
	for _, msg := range runCmd(cmd) {
		m, _ = applyUpdate(m, msg)
	}
	if _, ok := m.notesFor(m.selected); !ok {
		t.Errorf("notes for %s not loaded", m.selected)
	}
	fmt.Println("=== Modal ===")
	fmt.Println(m.View())

	m, _ = applyUpdate(m, key("esc"))
	m, _ = applyUpdate(m, key("q"))
	if !m.tornDown {
		t.Error("expected teardown")
	}
}
