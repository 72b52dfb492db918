package model

import "fmt"

type ModalState string

const (
	ModalClosed ModalState = "CLOSED"
	ModalOpen   ModalState = "OPEN"
)

// DrillDownModal is the detail popup of the hourly chart. The zero value is
// Closed.
type DrillDownModal struct {
	State     ModalState  `json:"state"`
	Title     string      `json:"title"`
	Direction Direction   `json:"direction,omitempty"`
	Hour      int         `json:"hour"`
	Rows      []DetailRow `json:"rows"`
}

func (m DrillDownModal) IsOpen() bool {
	return m.State == ModalOpen
}

// Open shows rows for (direction, hour). Opening an already open modal
// replaces its content without passing through Closed. An empty rows slice
// still opens the modal.
func (m DrillDownModal) Open(direction Direction, hour int, rows []DetailRow) DrillDownModal {
	if rows == nil {
		rows = []DetailRow{}
	}
	return DrillDownModal{
		State:     ModalOpen,
		Title:     fmt.Sprintf("時段 %d點 - %s詳細資料", hour, direction.Label()),
		Direction: direction,
		Hour:      hour,
		Rows:      rows,
	}
}

func (m DrillDownModal) Close() DrillDownModal {
	return DrillDownModal{State: ModalClosed, Rows: []DetailRow{}}
}

// Normalize turns the zero value into an explicit Closed modal.
func (m DrillDownModal) Normalize() DrillDownModal {
	if m.State == "" {
		return m.Close()
	}
	return m
}
