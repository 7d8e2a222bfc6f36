package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"

	"github.com/careloop/hms-backend/internal/config"
	"github.com/careloop/hms-backend/internal/db"
	"github.com/careloop/hms-backend/internal/identity"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "seed").Logger()
	log.Info().Msg("seed starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		log.Fatal().Err(err).Msg("apply schema")
	}

	gofakeit.Seed(time.Now().UnixNano())

	repo := identity.NewPgRepository(pool)
	tokens := identity.NewTokenProvider(cfg.JWTSecret, cfg.TokenTTL)
	auth := identity.NewAuthService(repo, tokens)

	if err := seedDoctors(context.Background(), auth, 20); err != nil {
		log.Fatal().Err(err).Msg("seed doctors")
	}
	if err := seedPatients(context.Background(), auth, 100); err != nil {
		log.Fatal().Err(err).Msg("seed patients")
	}

	log.Info().Msg("seed complete")
}

var specializations = []string{
	"Dermatology",
	"Cardiology",
	"General Practice",
	"Orthopedics",
	"Endocrinology",
	"Neurology",
	"Pediatrics",
	"Psychiatry",
	"Ophthalmology",
	"ENT",
}

func seedDoctors(ctx context.Context, auth *identity.AuthService, count int) error {
	for i := 0; i < count; i++ {
		spec := specializations[gofakeit.Number(0, len(specializations)-1)]
		qual := "MBBS, MD"
		years := gofakeit.Number(1, 35)
		fee := float64(gofakeit.Number(20, 150)) * 10
		bio := gofakeit.Sentence(12)
		phone := gofakeit.Phone()

		_, err := auth.Register(ctx, identity.RegisterInput{
			Name:            "Dr. " + gofakeit.Name(),
			Email:           fmt.Sprintf("doctor%d@%s", i, gofakeit.DomainName()),
			Password:        gofakeit.Password(true, true, true, false, false, 12),
			Phone:           &phone,
			Role:            string(identity.RoleDoctor),
			Specialization:  &spec,
			Qualification:   &qual,
			ExperienceYears: &years,
			ConsultationFee: &fee,
			Bio:             &bio,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

var bloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

func seedPatients(ctx context.Context, auth *identity.AuthService, count int) error {
	for i := 0; i < count; i++ {
		age := gofakeit.Number(1, 90)
		gender := gofakeit.RandomString([]string{"MALE", "FEMALE", "OTHER"})
		blood := bloodGroups[gofakeit.Number(0, len(bloodGroups)-1)]
		address := gofakeit.Address().Address
		emergency := gofakeit.Phone()
		phone := gofakeit.Phone()

		_, err := auth.Register(ctx, identity.RegisterInput{
			Name:             gofakeit.Name(),
			Email:            fmt.Sprintf("patient%d@%s", i, gofakeit.DomainName()),
			Password:         gofakeit.Password(true, true, true, false, false, 12),
			Phone:            &phone,
			Role:             string(identity.RolePatient),
			Age:              &age,
			Gender:           &gender,
			BloodGroup:       &blood,
			Address:          &address,
			EmergencyContact: &emergency,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
