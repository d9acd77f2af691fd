package main

import (
	"github.com/spf13/cobra"
	"kgsite/internal"
	"kgsite/internal/geo"
)

var geoOpts struct {
	profile      string
	lat          float64
	lon          float64
	accuracy     float64
	errorCode    int
	errorMessage string
	insecure     bool
	unsupported  bool
}

type geoOutput struct {
	Status  geo.Status   `json:"status"`
	Payload *geo.Payload `json:"payload"`
	View    geo.View     `json:"view"`
}

var geoCmd = &cobra.Command{
	Use:   "geo",
	Short: "Drive the geolocation consent record",
}

var geoRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "Resolve a location request with the given browser outcome",
	Example: `  kgsite geo request --lat 40.41 --lon -3.70 --accuracy 25
  kgsite geo request --error-code 1 --error-message "User denied Geolocation"
  kgsite geo request --insecure`,
	RunE: runGeoRequest,
}

var geoStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the stored record, its status and the banner view",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withToolkit(func(tk *internal.Toolkit) error {
			st := tk.Consent.For(geoOpts.profile).GetStatus()
			return printJSON(cmd.OutOrStdout(), geoOutput{
				Status:  st.Status,
				Payload: st.Payload,
				View:    geo.ResolveView(st.Payload, "", nil),
			})
		})
	},
}

var geoClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored record",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withToolkit(func(tk *internal.Toolkit) error {
			tk.Consent.For(geoOpts.profile).ClearStored()
			return printJSON(cmd.OutOrStdout(), geoOutput{Status: geo.StatusEmpty, View: geo.ResolveView(nil, "", nil)})
		})
	},
}

var geoDeclineCmd = &cobra.Command{
	Use:   "decline",
	Short: "Record that the user chose not now",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withToolkit(func(tk *internal.Toolkit) error {
			p := tk.Consent.For(geoOpts.profile).Decline()
			return printJSON(cmd.OutOrStdout(), geoOutput{
				Status:  geo.StatusDeclined,
				Payload: p,
				View:    geo.ResolveView(p, geo.StatusDeclined, nil),
			})
		})
	},
}

func init() {
	geoCmd.PersistentFlags().StringVar(&geoOpts.profile, "profile", "", "profile whose record is used")

	f := geoRequestCmd.Flags()
	f.Float64Var(&geoOpts.lat, "lat", 0, "latitude reported by the browser")
	f.Float64Var(&geoOpts.lon, "lon", 0, "longitude reported by the browser")
	f.Float64Var(&geoOpts.accuracy, "accuracy", 0, "accuracy in meters")
	f.IntVar(&geoOpts.errorCode, "error-code", 0, "geolocation error code (1 denied, 2 unavailable, 3 timeout)")
	f.StringVar(&geoOpts.errorMessage, "error-message", "", "geolocation error message")
	f.BoolVar(&geoOpts.insecure, "insecure", false, "simulate a non-secure page")
	f.BoolVar(&geoOpts.unsupported, "unsupported", false, "simulate a browser without geolocation")
	geoRequestCmd.MarkFlagsRequiredTogether("lat", "lon")
	geoRequestCmd.MarkFlagsMutuallyExclusive("lat", "error-code")

	geoCmd.AddCommand(geoRequestCmd, geoStatusCmd, geoClearCmd, geoDeclineCmd)
}

func runGeoRequest(cmd *cobra.Command, _ []string) error {
	opts := []geo.Option{geo.WithSecureContext(func() bool { return !geoOpts.insecure })}
	if loc, ok := requestLocator(cmd); ok {
		opts = append(opts, geo.WithLocator(loc))
	}

	return withToolkit(func(tk *internal.Toolkit) error {
		res := tk.Consent.For(geoOpts.profile, opts...).Request(cmd.Context())
		return printJSON(cmd.OutOrStdout(), geoOutput{
			Status:  res.Status,
			Payload: res.Payload,
			View:    geo.ResolveView(res.Payload, res.Status, nil),
		})
	})
}

func requestLocator(cmd *cobra.Command) (geo.Locator, bool) {
	switch {
	case geoOpts.unsupported:
		return nil, false
	case geoOpts.errorCode != 0:
		return geo.StaticLocator{Err: &geo.PositionError{Code: geoOpts.errorCode, Message: geoOpts.errorMessage}}, true
	case cmd.Flags().Changed("lat"):
		return geo.StaticLocator{Position: geo.Position{
			Latitude:  geoOpts.lat,
			Longitude: geoOpts.lon,
			Accuracy:  geoOpts.accuracy,
		}}, true
	}
	return nil, false
}
