package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"natal-chart-service/internal/adapters/archive"
	"natal-chart-service/internal/adapters/ephemeris"
	"natal-chart-service/internal/adapters/timezone"
	"natal-chart-service/internal/api/dto"
	"natal-chart-service/internal/config"
	"natal-chart-service/internal/domain"
	"natal-chart-service/internal/platform/db"
	"natal-chart-service/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	rootCmd := &cobra.Command{
		Use:   "charttool",
		Short: "Compute astrological charts from the command line",
		Long:  "Resolves a local civil moment and coordinate to UT, queries the Swiss Ephemeris, and prints the chart or its elemental temperament.",
	}

	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "Compute a full chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := buildChart(cmd)
			if err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			if output == "json" {
				return printJSON(dto.FromChart(chart))
			}
			printChartText(chart)
			return nil
		},
	}

	temperamentCmd := &cobra.Command{
		Use:   "temperament",
		Short: "Compute the elemental temperament of a chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := buildChart(cmd)
			if err != nil {
				return err
			}

			weights, err := services.Temperament(chart)
			if err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			if output == "json" {
				return printJSON(dto.TemperamentResponse{
					Temperament: dto.FromWeights(weights),
					Chart:       dto.FromChart(chart),
				})
			}
			fmt.Printf("Fire  %5.1f%%\nEarth %5.1f%%\nAir   %5.1f%%\nWater %5.1f%%\n",
				weights.Fire, weights.Earth, weights.Air, weights.Water)
			return nil
		},
	}

	for _, cmd := range []*cobra.Command{chartCmd, temperamentCmd} {
		cmd.Flags().String("date", "", "calendar date, YYYY-MM-DD (required)")
		cmd.Flags().String("time", "0", "local clock time, HH:MM[:SS] or decimal hour")
		cmd.Flags().Float64("lat", 0, "latitude, -90..90 (required)")
		cmd.Flags().Float64("lon", 0, "longitude, -180..180 (required)")
		cmd.Flags().String("system", "whole", "house system: whole, placidus, equal, koch")
		cmd.Flags().StringP("output", "o", "text", "output format (text, json)")
		_ = cmd.MarkFlagRequired("date")
		_ = cmd.MarkFlagRequired("lat")
		_ = cmd.MarkFlagRequired("lon")
	}

	initdbCmd := &cobra.Command{
		Use:   "initdb",
		Short: "Initialize the chart archive schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
			if databaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required")
			}

			conn, err := db.Open(databaseURL)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := archive.InitSchema(conn); err != nil {
				return err
			}
			log.Println("Archive schema ready.")
			return nil
		},
	}

	rootCmd.AddCommand(chartCmd, temperamentCmd, initdbCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildChart(cmd *cobra.Command) (*domain.Chart, error) {
	req, err := requestFromFlags(cmd)
	if err != nil {
		return nil, err
	}

	eph, err := ephemeris.NewSwiss(config.Get("EPHE_PATH", "./ephe"))
	if err != nil {
		return nil, err
	}
	defer eph.Close()

	locator, err := timezone.NewTZFLocator()
	if err != nil {
		return nil, err
	}

	return services.BuildChart(context.Background(), req, locator, eph)
}

func requestFromFlags(cmd *cobra.Command) (services.BuildChartRequest, error) {
	var req services.BuildChartRequest

	date, _ := cmd.Flags().GetString("date")
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return req, fmt.Errorf("--date must be YYYY-MM-DD")
	}

	moment := domain.CivilMoment{Year: parsed.Year(), Month: int(parsed.Month()), Day: parsed.Day()}
	clock, _ := cmd.Flags().GetString("time")
	if strings.Contains(clock, ":") {
		parts := strings.Split(clock, ":")
		if len(parts) > 3 {
			return req, fmt.Errorf("--time must be HH:MM[:SS] or a decimal hour")
		}
		fields := make([]int, 3)
		for i, p := range parts {
			v, err := strconv.Atoi(p)
			if err != nil {
				return req, fmt.Errorf("--time must be HH:MM[:SS] or a decimal hour")
			}
			fields[i] = v
		}
		moment.Hour = float64(fields[0])
		moment.Minute = fields[1]
		moment.Second = fields[2]
	} else {
		hour, err := strconv.ParseFloat(clock, 64)
		if err != nil {
			return req, fmt.Errorf("--time must be HH:MM[:SS] or a decimal hour")
		}
		moment.Hour = hour
	}
	req.Moment = moment

	lat, _ := cmd.Flags().GetFloat64("lat")
	lon, _ := cmd.Flags().GetFloat64("lon")
	req.Coordinate = domain.GeoCoordinate{Lat: lat, Lon: lon}
	if !req.Coordinate.Valid() {
		return req, fmt.Errorf("--lat must be in -90..90 and --lon in -180..180")
	}

	systemName, _ := cmd.Flags().GetString("system")
	system, err := domain.ParseHouseSystem(systemName)
	if err != nil {
		return req, fmt.Errorf("--system must be one of whole, placidus, equal, koch")
	}
	req.System = system

	return req, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printChartText(chart *domain.Chart) {
	fmt.Printf("Zone       %s\n", chart.Zone)
	fmt.Printf("UTC        %04d-%02d-%02d %08.5fh\n", chart.UTC.Year, chart.UTC.Month, chart.UTC.Day, chart.UTC.Hour)
	fmt.Printf("Julian Day %.6f\n\n", chart.JulianDay)

	for _, b := range domain.ChartBodies {
		pos, ok := chart.Position(b)
		if !ok {
			fmt.Printf("%-10s unavailable\n", b)
			continue
		}
		retro := ""
		if pos.Retrograde() {
			retro = " R"
		}
		fmt.Printf("%-10s %7.3f°  %s %6.3f°%s\n",
			b, pos.Longitude, domain.SignOf(pos.Longitude), domain.DegreeInSign(pos.Longitude), retro)
	}

	fmt.Println()
	if chart.Houses == nil {
		fmt.Println("Houses     unavailable")
		return
	}
	fmt.Printf("Asc        %7.3f°  %s\n", chart.Houses.Ascendant, domain.SignOf(chart.Houses.Ascendant))
	fmt.Printf("MC         %7.3f°  %s\n", chart.Houses.Midheaven, domain.SignOf(chart.Houses.Midheaven))
	for i, cusp := range chart.Houses.Cusps {
		fmt.Printf("House %-2d   %7.3f°\n", i+1, cusp)
	}
}
