//go:build headless

package main

import "fmt"

type EbitenPanel struct{}

func NewEbitenPanel(paste func(string)) *EbitenPanel { return &EbitenPanel{} }

func (p *EbitenPanel) Start() error          { return fmt.Errorf("front panel unavailable in headless build") }
func (p *EbitenPanel) Done() <-chan struct{} { return nil }
func (p *EbitenPanel) ReadRow(row int) byte  { return 0x0F }
func (p *EbitenPanel) ReadAxes() (int, int)  { return 0, 0 }
func (p *EbitenPanel) SetLines([4]string)    {}

type TermPanel struct{}

func NewTermPanel() (*TermPanel, error) {
	return nil, fmt.Errorf("front panel unavailable in headless build")
}

func (tp *TermPanel) Done() <-chan struct{} { return nil }
func (tp *TermPanel) Close()                {}
func (tp *TermPanel) ReadRow(row int) byte  { return 0x0F }
func (tp *TermPanel) ReadAxes() (int, int)  { return 0, 0 }
func (tp *TermPanel) SetLines([4]string)    {}
