package domain

import (
	"fmt"
	"strings"

	"github.com/mouse-blink/turretlint/internal/domain/ncode"
	m "github.com/mouse-blink/turretlint/internal/model"
)

type scanPhase int

const (
	phaseBeforeFirstTurretSelect scanPhase = iota
	phaseRouting
)

// scanContext owns all mutable state of one analysis pass.
type scanContext struct {
	limits  m.Limits
	raw     []string
	phase   scanPhase
	current m.Turret
	machine m.MachineState
	session *m.BalanceSession

	common []m.ClassifiedLine
	upper  []m.ClassifiedLine
	lower  []m.ClassifiedLine

	errors   []m.Diagnostic
	warnings []m.Diagnostic
	info     []m.Diagnostic
}

func newScanContext(raw []string, limits m.Limits) *scanContext {
	return &scanContext{
		limits: limits,
		raw:    raw,
		phase:  phaseBeforeFirstTurretSelect,
	}
}

func (sc *scanContext) scanLine(idx int, pl m.ProgramLine) {
	text := strings.TrimSpace(pl.Text)
	if text == "" || ncode.IsSectionDivider(text) {
		return
	}

	line := m.ProgramLine{Text: text, Number: pl.Number}
	turret := ncode.DetectTurretSelection(text)

	if sc.phase == phaseBeforeFirstTurretSelect {
		if turret == m.TurretNone {
			if !ncode.IsProgramNumber(text) {
				sc.common = append(sc.common, m.ClassifiedLine{
					Text:      text,
					Number:    line.Number,
					Tag:       m.TagCommon,
					IsComment: ncode.IsComment(text),
				})
			}

			return
		}

		sc.phase = phaseRouting
	}

	if turret != m.TurretNone {
		sc.selectTurret(turret, line)
		return
	}

	if sc.current == m.TurretNone {
		return
	}

	state := sc.machine.Turret(sc.current)

	for _, rule := range markerRules {
		if !rule.detect(text) {
			continue
		}

		if note := rule.apply(state, text); note != "" {
			sc.note(line, note)
		}
	}

	if wait, ok := ncode.DetectWaitCode(text); ok {
		state.Waits = append(state.Waits, m.WaitEntry{WaitCode: wait, Line: line.Number})
	}

	if ncode.DetectBalanceStart(text) {
		sc.startBalance(line)
	}

	if ncode.DetectBalanceEnd(text) {
		sc.endBalance(idx, line)
	}

	for _, rule := range lineRules {
		rule(sc, line)
	}

	tag := m.TagNormal
	if sc.balanceActive() {
		tag = m.TagBalance
	}

	sc.appendStream(sc.current, m.ClassifiedLine{
		Text:           text,
		Number:         line.Number,
		Tag:            tag,
		IsComment:      ncode.IsComment(text),
		Spindle:        state.Spindle,
		Milling:        state.Milling,
		CrossMachining: state.CrossMachining,
	})
}

func (sc *scanContext) selectTurret(turret m.Turret, line m.ProgramLine) {
	sc.current = turret

	for _, code := range ncode.ExtractGCodes(line.Text) {
		if code != "G109" && ncode.IsMotionCode(code) {
			sc.warn(line, msgTurretWithMotion)
			break
		}
	}

	sc.appendStream(turret, m.ClassifiedLine{
		Text:   line.Text,
		Number: line.Number,
		Tag:    m.TagTurretSelect,
	})

	code := ncode.TurretUpperCode
	if turret == m.TurretLower {
		code = ncode.TurretLowerCode
	}

	sc.note(line, fmt.Sprintf("%s turret selected (%s)", turret.Title(), code))
}

func (sc *scanContext) startBalance(line m.ProgramLine) {
	sc.session = &m.BalanceSession{Master: sc.current, Active: true}

	master := sc.machine.Turret(sc.current)
	slaveTurret := sc.current.Opposite()
	slave := sc.machine.Turret(slaveTurret)

	masterWait, ok := master.LastWait()

	switch {
	case !ok:
		sc.warn(line, msgWaitBeforeBalance)
	default:
		slaveWait, ok := slave.LastWait()
		if !ok {
			sc.warn(line, fmt.Sprintf("%s turret needs wait code before balance cutting", slaveTurret.Title()))
		} else if masterWait.Code != slaveWait.Code {
			sc.warn(line, fmt.Sprintf("Mismatched wait codes - Master: %s, Slave: %s", masterWait.Code, slaveWait.Code))
		}
	}

	sc.note(line, fmt.Sprintf("Balance cutting starts (Master: %s)", sc.current))
}

func (sc *scanContext) endBalance(idx int, line m.ProgramLine) {
	sc.session = nil

	end := idx + sc.limits.ReleaseLookahead + 1
	if end > len(sc.raw) {
		end = len(sc.raw)
	}

	released := false

	for _, next := range sc.raw[idx:end] {
		if _, ok := ncode.DetectWaitCode(strings.TrimSpace(next)); ok {
			released = true
			break
		}
	}

	if !released {
		sc.warn(line, msgSlaveNotReleased)
	}

	sc.note(line, "Balance cutting ends")
}

func (sc *scanContext) balanceActive() bool {
	return sc.session != nil && sc.session.Active
}

func (sc *scanContext) appendStream(turret m.Turret, cl m.ClassifiedLine) {
	switch turret {
	case m.TurretUpper:
		sc.upper = append(sc.upper, cl)
	case m.TurretLower:
		sc.lower = append(sc.lower, cl)
	case m.TurretNone:
	}
}

func (sc *scanContext) fail(line m.ProgramLine, msg string) {
	sc.errors = append(sc.errors, m.Diagnostic{Severity: m.SeverityError, Line: line.Number, Message: msg})
}

func (sc *scanContext) warn(line m.ProgramLine, msg string) {
	sc.warnings = append(sc.warnings, m.Diagnostic{Severity: m.SeverityWarning, Line: line.Number, Message: msg})
}

func (sc *scanContext) note(line m.ProgramLine, msg string) {
	sc.info = append(sc.info, m.Diagnostic{Severity: m.SeverityInfo, Line: line.Number, Message: msg})
}

func (sc *scanContext) result() m.Analysis {
	return m.Analysis{
		TotalLines: len(sc.raw),
		Common:     sc.common,
		Upper:      sc.upper,
		Lower:      sc.lower,
		Errors:     sc.errors,
		Warnings:   sc.warnings,
		Info:       sc.info,
		Machine:    sc.machine,
	}
}
