package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchLists Phase = iota
	HydrateAlbums
	ExportList
)

func (p Phase) String() string {
	switch p {
	case FetchLists:
		return "fetch_lists"
	case HydrateAlbums:
		return "hydrate_albums"
	case ExportList:
		return "export_list"
	default:
		return ""
	}
}

func fetchListsUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLists,
		Step:    step,
		Total:   total,
		Message: "Fetching lists...",
	}
}

func foundListsUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLists,
		Step:    count,
		Total:   count,
		Message: fmt.Sprintf("Found %d lists", count),
	}
}

func hydrateAlbumsUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   HydrateAlbums,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Resolving albums for %s...", step, total, title),
	}
}

func exportingListUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportList,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, title),
	}
}

func exportCompletedUpdate(step, total int, title string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportList,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, title, filesCount),
	}
}

func exportFailedUpdate(step, total int, title string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportList,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, title, err),
	}
}
