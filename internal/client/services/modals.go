package services

import (
	"sync"

	"github.com/dmitrijs2005/wardrobe/internal/client/models"
)

// ConfirmConfig describes a confirmation dialog. OnConfirm is owned by the
// caller and runs only when the user confirms.
type ConfirmConfig struct {
	Title       string
	Message     string
	ConfirmText string
	CancelText  string
	OnConfirm   func()
}

// ModalStore keeps three independent dialog slices: outfit detail, confirm
// and alert. Opening or closing one never touches the others.
type ModalStore struct {
	mu sync.Mutex

	detailOpen bool
	detail     *models.Outfit

	confirmOpen bool
	confirm     *ConfirmConfig

	alertOpen bool
	alert     string
}

func NewModalStore() *ModalStore {
	return &ModalStore{}
}

func (m *ModalStore) OpenDetail(o models.Outfit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := o.Clone()
	m.detail, m.detailOpen = &c, true
}

func (m *ModalStore) CloseDetail() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detail, m.detailOpen = nil, false
}

// Detail returns the outfit shown in the detail dialog.
func (m *ModalStore) Detail() (models.Outfit, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.detailOpen || m.detail == nil {
		return models.Outfit{}, false
	}
	return m.detail.Clone(), true
}

func (m *ModalStore) OpenConfirm(cfg ConfirmConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cfg.ConfirmText == "" {
		cfg.ConfirmText = "Confirm"
	}
	if cfg.CancelText == "" {
		cfg.CancelText = "Cancel"
	}
	m.confirm, m.confirmOpen = &cfg, true
}

func (m *ModalStore) CloseConfirm() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirm, m.confirmOpen = nil, false
}

// Pending returns the open confirmation dialog.
func (m *ModalStore) Pending() (ConfirmConfig, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.confirmOpen || m.confirm == nil {
		return ConfirmConfig{}, false
	}
	return *m.confirm, true
}

// Confirm closes the confirm dialog and runs its callback. It reports false
// when no dialog was open.
func (m *ModalStore) Confirm() bool {
	m.mu.Lock()
	cfg := m.confirm
	open := m.confirmOpen
	m.confirm, m.confirmOpen = nil, false
	m.mu.Unlock()

	if !open || cfg == nil {
		return false
	}
	if cfg.OnConfirm != nil {
		cfg.OnConfirm()
	}
	return true
}

// Cancel closes the confirm dialog without running its callback.
func (m *ModalStore) Cancel() {
	m.CloseConfirm()
}

func (m *ModalStore) OpenAlert(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alert, m.alertOpen = message, true
}

func (m *ModalStore) CloseAlert() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alert, m.alertOpen = "", false
}

// Alert returns the open alert message.
func (m *ModalStore) Alert() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.alert, m.alertOpen
}
