package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/askiada/go-lensing/internal/config"
	"github.com/askiada/go-lensing/pkg/catalog"
	"github.com/askiada/go-lensing/pkg/profile"
	"github.com/askiada/go-lensing/pkg/shear"
)

const arcsecPerDegree = 3600

var truthOut string

// lensCmd lenses the configured objects.
var lensCmd = &cobra.Command{
	Use:   "lens",
	Short: "Lens the configured objects with the configured shear",
	Long: `Builds the shear from the "shear" section of the config and applies it to
every Gaussian in "objects". Prints one line per object:

  g1 g2 mu flux hlr`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return lensObjects(cmd.OutOrStdout(), cfg, logger, truthOut)
	},
}

func lensObjects(out io.Writer, cfg *config.Config, logger *zap.Logger, truthPath string) error {
	shearType, shearCfg, err := cfg.ShearConfig()
	if err != nil {
		return err
	}

	s, err := shear.Build(shearType, shearCfg)
	if err != nil {
		return err
	}

	logger.Debug("shear built", zap.String("type", shearType), zap.Int("objects", len(cfg.Objects)))

	rows := make([]catalog.Row, 0, len(cfg.Objects))

	for i, o := range cfg.Objects {
		obj, err := profile.NewGaussian(o.Flux, o.HLR)
		if err != nil {
			return errors.Wrapf(err, "object %d", i)
		}

		opts := []shear.LensOption{shear.AtPosition(o.X, o.Y)}
		if o.ZSource != nil {
			opts = append(opts, shear.SourceRedshift(*o.ZSource))
		}

		lensed, lp, err := s.Lens(obj, opts...)
		if err != nil {
			return errors.Wrapf(err, "unable to lens object %d", i)
		}

		g, ok := lensed.(*profile.Gaussian)
		if !ok {
			return errors.Errorf("object %d: unexpected profile %T", i, lensed)
		}

		if _, err := fmt.Fprintf(out, "%.6f %.6f %.6f %.6f %.6f\n", lp.G1, lp.G2, lp.Mu, g.Flux(), g.HalfLightRadius()); err != nil {
			return errors.Wrap(err, "unable to print object")
		}

		rows = append(rows, catalog.Row{RA: o.X / arcsecPerDegree, Flux: g.Flux(), HLR: g.HalfLightRadius()})
	}

	if truthPath == "" {
		return nil
	}

	if err := catalog.WriteFITS(truthPath, rows); err != nil {
		return err
	}

	logger.Info("truth table written", zap.String("path", truthPath), zap.Int("rows", len(rows)))

	return nil
}
