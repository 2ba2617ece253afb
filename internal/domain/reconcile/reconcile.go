// Package reconcile moves diagnostics from plain-text coordinates onto the
// original document.
package reconcile

import "github.com/texspell/texspell/internal/domain"

// Reconcile rewrites d's span into document coordinates. Both ends of the
// span are translated independently, so markup inside the span widens it
// and markup dropped from it narrows it. When either end has no exact
// mapping, the span is clamped to the nearest preceding mapped position and
// marked approximate.
func Reconcile(d domain.Diagnostic, m *domain.OffsetMap) domain.ReconciledDiagnostic {
	start, startExact := m.Translate(d.Offset)
	if d.Length == 0 {
		return domain.ReconciledDiagnostic{
			Diagnostic:     d,
			DocumentOffset: start,
			Approximate:    !startExact,
		}
	}

	end, endExact := m.TranslateEnd(d.End())
	length := end - start
	if length < 0 {
		length = 0
	}
	return domain.ReconciledDiagnostic{
		Diagnostic:     d,
		DocumentOffset: start,
		DocumentLength: length,
		Approximate:    !startExact || !endExact,
	}
}

// All reconciles ds in order, one output per input.
func All(ds []domain.Diagnostic, m *domain.OffsetMap) []domain.ReconciledDiagnostic {
	out := make([]domain.ReconciledDiagnostic, len(ds))
	for i, d := range ds {
		out[i] = Reconcile(d, m)
	}
	return out
}
