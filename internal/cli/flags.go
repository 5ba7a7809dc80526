package cli

import (
	"github.com/spf13/pflag"

	"github.com/joinpeakapp/peak/internal/domain"
)

// frequencyValue is a pflag.Value accepting none, weekly:<day> or every:<days>.
type frequencyValue struct {
	f *domain.Frequency
}

var _ pflag.Value = frequencyValue{}

func newFrequencyValue(f *domain.Frequency) frequencyValue {
	*f = domain.NoFrequency()
	return frequencyValue{f: f}
}

func (v frequencyValue) String() string {
	if v.f == nil {
		return string(domain.FrequencyNone)
	}
	return v.f.String()
}

func (v frequencyValue) Set(s string) error {
	f, err := domain.ParseFrequency(s)
	if err != nil {
		return err
	}
	*v.f = f
	return nil
}

func (v frequencyValue) Type() string {
	return "frequency"
}

func addFrequencyFlag(fs *pflag.FlagSet, f *domain.Frequency) {
	fs.Var(newFrequencyValue(f), "frequency", "Frequency: none, weekly:<day> or every:<days>")
}
