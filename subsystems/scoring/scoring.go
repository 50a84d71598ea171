// Package scoring coordinates the intake and outtake rollers with the
// mid-scoring piston.
//
// The machine runs in one of three modes. Combo spins both rollers to score
// through the main path. MidScoring retracts the piston and reverses the
// intake to feed the middle goal; it always begins with a short unjam kick
// that clears anything wedged between the rollers. Idle leaves the intake to
// its own control and keeps the outtake stopped.
package scoring

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/fieldnav/fieldnav/components/motor"
	"github.com/fieldnav/fieldnav/components/piston"
)

// Mode is the machine's current activity.
type Mode int

// The scoring modes.
const (
	ModeIdle Mode = iota
	ModeCombo
	ModeMidScoring
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeCombo:
		return "Combo"
	case ModeMidScoring:
		return "MidScoring"
	default:
		return "Unknown"
	}
}

const (
	rollerRPM = 600.0

	// unjamTime is how long the reversed kick runs when mid-scoring starts.
	unjamTime = 100 * time.Millisecond
)

// Input is one snapshot of the scoring buttons.
type Input struct {
	// ToggleMidScoring enters or leaves mid-scoring on its rising edge.
	ToggleMidScoring bool
	// ToggleCombo starts or stops combo mode on its rising edge. Ignored
	// while mid-scoring.
	ToggleCombo bool
}

// A Machine drives the scoring rollers and piston from button snapshots. Call
// Update on the control loop cadence; commands are idempotent so repeating a
// mode's commands every tick is harmless.
type Machine struct {
	intake  motor.Motor
	outtake motor.Motor
	piston  piston.Piston
	clk     clock.Clock
	logger  golog.Logger

	mu         sync.Mutex
	mode       Mode
	unjamming  bool
	unjamStart time.Time
	midHeld    bool
	comboHeld  bool
}

// New returns an idle Machine. A nil clk uses the wall clock.
func New(intake, outtake motor.Motor, mid piston.Piston, clk clock.Clock, logger golog.Logger) *Machine {
	if clk == nil {
		clk = clock.New()
	}
	return &Machine{intake: intake, outtake: outtake, piston: mid, clk: clk, logger: logger}
}

// Update advances the machine one tick: it applies button edges and commands
// the motors for the resulting mode.
func (m *Machine) Update(ctx context.Context, in Input) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode == ModeMidScoring && m.unjamming {
		if m.clk.Since(m.unjamStart) < unjamTime {
			// the kick runs to completion; buttons wait
			return multierr.Combine(
				m.intake.SetRPM(ctx, rollerRPM),
				m.outtake.SetRPM(ctx, -rollerRPM),
			)
		}
		m.unjamming = false
	}

	midEdge := in.ToggleMidScoring && !m.midHeld
	m.midHeld = in.ToggleMidScoring
	if midEdge {
		if m.mode == ModeMidScoring {
			return m.leaveMidScoringLocked(ctx)
		}
		return m.enterMidScoringLocked(ctx)
	}

	switch m.mode {
	case ModeMidScoring:
		// track combo presses without acting on them so leaving
		// mid-scoring starts fresh
		m.comboHeld = in.ToggleCombo
		return multierr.Combine(
			m.intake.SetRPM(ctx, -rollerRPM),
			m.outtake.SetRPM(ctx, -rollerRPM),
		)
	default:
		comboEdge := in.ToggleCombo && !m.comboHeld
		m.comboHeld = in.ToggleCombo
		if comboEdge {
			if m.mode == ModeCombo {
				m.mode = ModeIdle
				m.logger.Debugw("combo off")
				return multierr.Combine(
					m.intake.SetRPM(ctx, 0),
					m.outtake.SetRPM(ctx, 0),
				)
			}
			m.mode = ModeCombo
			m.logger.Debugw("combo on")
		}
		if m.mode == ModeCombo {
			return multierr.Combine(
				m.intake.SetRPM(ctx, rollerRPM),
				m.outtake.SetRPM(ctx, -rollerRPM),
			)
		}
		return m.outtake.SetRPM(ctx, 0)
	}
}

func (m *Machine) enterMidScoringLocked(ctx context.Context) error {
	m.mode = ModeMidScoring
	m.unjamming = true
	m.unjamStart = m.clk.Now()
	m.logger.Debugw("entering mid-scoring", "unjam", unjamTime)
	return multierr.Combine(
		m.piston.Set(ctx, false),
		m.intake.SetRPM(ctx, rollerRPM),
		m.outtake.SetRPM(ctx, -rollerRPM),
	)
}

func (m *Machine) leaveMidScoringLocked(ctx context.Context) error {
	m.mode = ModeIdle
	m.unjamming = false
	m.logger.Debugw("leaving mid-scoring")
	return multierr.Combine(
		m.piston.Set(ctx, true),
		m.intake.SetRPM(ctx, 0),
		m.outtake.SetRPM(ctx, 0),
	)
}

// Mode returns the machine's current mode.
func (m *Machine) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// OuttakeRPM returns the roller velocity the current mode commands.
func (m *Machine) OuttakeRPM() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode == ModeCombo || m.mode == ModeMidScoring {
		return -rollerRPM
	}
	return 0
}

// CancelCombo drops combo mode and stops the outtake immediately. Other
// subsystems call this when they take the rollers over. Outside combo mode it
// does nothing.
func (m *Machine) CancelCombo(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode != ModeCombo {
		return nil
	}
	m.mode = ModeIdle
	return errors.Wrap(m.outtake.SetRPM(ctx, 0), "stopping outtake")
}
