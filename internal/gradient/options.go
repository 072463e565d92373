package gradient

import (
	"errors"
	"fmt"
	"math"
)

// Kernel names a derivative operator.
type Kernel string

const (
	KernelDifference Kernel = "difference"
	KernelRoberts    Kernel = "roberts"
	KernelSobel      Kernel = "sobel"
	KernelAndo       Kernel = "ando"
)

// Luminance names the image-to-plane reduction applied before
// differentiation.
type Luminance string

const (
	LuminanceGray     Luminance = "gray"
	LuminanceLab      Luminance = "lab"
	LuminanceContrast Luminance = "contrast"
)

var (
	// ErrUnknownKernel is returned for an unsupported Options.Kernel.
	ErrUnknownKernel = errors.New("gradient: unknown kernel")

	// ErrUnknownLuminance is returned for an unsupported Options.Luminance.
	ErrUnknownLuminance = errors.New("gradient: unknown luminance mode")

	// ErrInvalidSigma is returned for a negative or non-finite Options.Sigma.
	ErrInvalidSigma = errors.New("gradient: sigma must be a finite, non-negative number")
)

// Options selects how gradients are computed.
type Options struct {
	Kernel    Kernel    `json:"kernel" toml:"kernel"`
	Luminance Luminance `json:"luminance" toml:"luminance"`

	// Sigma is the standard deviation of the Gaussian applied to the image
	// before differentiation. Zero disables smoothing.
	Sigma float64 `json:"sigma" toml:"sigma"`

	// Table, when set, replaces math.Atan2 for orientation.
	Table *AtanTable `json:"-" toml:"-"`
}

// DefaultOptions returns Sobel on gray luma with a light blur.
func DefaultOptions() Options {
	return Options{
		Kernel:    KernelSobel,
		Luminance: LuminanceGray,
		Sigma:     1.0,
	}
}

// Validate checks the option values.
func (o Options) Validate() error {
	switch o.Kernel {
	case KernelDifference, KernelRoberts, KernelSobel, KernelAndo:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKernel, o.Kernel)
	}
	switch o.Luminance {
	case LuminanceGray, LuminanceLab, LuminanceContrast:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLuminance, o.Luminance)
	}
	if math.IsNaN(o.Sigma) || math.IsInf(o.Sigma, 0) || o.Sigma < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSigma, o.Sigma)
	}
	return nil
}
