package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulseboard/internal/repository"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load pulse surveys and the question bank from a YAML file",
		RunE:  runSeed,
	}
	f := cmd.Flags()
	f.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection string")
	f.String("mongo-db", "pulseboard", "MongoDB database name")
	f.StringP("file", "f", "cmd/seed/testdata/pulse.yaml", "Seed file path")
	f.Bool("dry-run", false, "Validate the seed file without writing")
	return cmd
}

// viperForCmd binds the command flags and PULSEBOARD_* environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("PULSEBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func runSeed(cmd *cobra.Command, _ []string) error {
	v := viperForCmd(cmd)

	seed, err := loadSeedFile(v.GetString("file"))
	if err != nil {
		return err
	}
	log.Printf("[Seed] %s: %d bank questions, %d surveys", v.GetString("file"), len(seed.QuestionBank), len(seed.Surveys))
	if v.GetBool("dry-run") {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(v.GetString("mongo-uri")))
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(v.GetString("mongo-db"))
	questionRepo := repository.NewQuestionRepo(db)
	surveyRepo := repository.NewSurveyRepo(db)

	for i := range seed.QuestionBank {
		q := seed.QuestionBank[i].template()
		if err := questionRepo.Create(ctx, q); err != nil {
			return fmt.Errorf("insert bank question %d: %w", i, err)
		}
	}

	// Surveys are listed oldest first so a previous period is stored before it is referenced
	ids := make(map[string]string, len(seed.Surveys))
	for _, s := range seed.Surveys {
		survey := s.survey(ids)
		id, err := surveyRepo.Create(ctx, survey)
		if err != nil {
			return fmt.Errorf("insert survey %q: %w", s.Key, err)
		}
		ids[s.Key] = id
		log.Printf("[Seed] survey %q (%s) for client %s -> %s", survey.Title, s.Key, survey.ClientID, id)
	}

	fmt.Printf("Successfully seeded %d surveys and %d bank questions\n", len(seed.Surveys), len(seed.QuestionBank))
	return nil
}
