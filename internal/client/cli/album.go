package cli

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/wanderlust/internal/album"
	"github.com/iudanet/wanderlust/internal/client/media"
	"github.com/iudanet/wanderlust/internal/models"
)

func (c *Cli) photoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photo",
		Short: "Manage the photo album of a trip",
	}
	cmd.AddCommand(
		c.photoListCmd(),
		c.photoAddCmd(),
		c.photoFavoriteCmd(),
		c.photoCaptionCmd(),
		c.photoCommentCmd(),
		c.photoDeleteCmd(),
		c.photoEditCmd(),
	)
	return cmd
}

func (c *Cli) photoListCmd() *cobra.Command {
	var favorites bool

	cmd := &cobra.Command{
		Use:   "list <trip-id>",
		Short: "List photos and videos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trip, err := c.deps.Data.Trip(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			photos := trip.Photos
			if favorites {
				photos = album.Favorites(&trip)
			}
			return render(c.io, photoListTemplate, photos)
		},
	}
	cmd.Flags().BoolVar(&favorites, "favorites", false, "only favorites")
	return cmd
}

func (c *Cli) photoAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <trip-id> <file>",
		Short: "Add an image or video file to the album",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			mimeType := http.DetectContentType(content)

			var photo models.Photo
			_, err = c.updateTrip(cmd.Context(), args[0], func(trip *models.Trip) (models.Trip, error) {
				updated, p, err := album.AddMedia(trip, mimeType, content, c.now())
				photo = p
				return updated, err
			})
			if err != nil {
				return err
			}
			c.io.Printf("✓ %s added (ID: %s)\n", photo.Caption, photo.ID)
			return nil
		},
	}
}

func (c *Cli) photoFavoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <trip-id> <photo-id>",
		Short: "Toggle favorite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.updateTrip(cmd.Context(), args[0], func(trip *models.Trip) (models.Trip, error) {
				return album.ToggleFavorite(trip, args[1])
			})
			if err != nil {
				return err
			}
			c.io.Println("✓ Favorite toggled")
			return nil
		},
	}
}

func (c *Cli) photoCaptionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "caption <trip-id> <photo-id> <caption>",
		Short: "Change the caption",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			caption := strings.Join(args[2:], " ")
			_, err := c.updateTrip(cmd.Context(), args[0], func(trip *models.Trip) (models.Trip, error) {
				return album.UpdateCaption(trip, args[1], caption)
			})
			if err != nil {
				return err
			}
			c.io.Println("✓ Caption updated")
			return nil
		},
	}
}

func (c *Cli) photoCommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comment <trip-id> <photo-id> <text>",
		Short: "Comment on a photo",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := c.deps.Data.Profile(cmd.Context())
			if err != nil {
				return err
			}
			text := strings.Join(args[2:], " ")
			_, err = c.updateTrip(cmd.Context(), args[0], func(trip *models.Trip) (models.Trip, error) {
				updated, _, err := album.AddComment(trip, args[1], profile.Name, text, c.now())
				return updated, err
			})
			if err != nil {
				return err
			}
			c.io.Println("✓ Comment added")
			return nil
		},
	}
}

func (c *Cli) photoDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trip-id> <photo-id>",
		Short: "Remove a photo from the album",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.updateTrip(cmd.Context(), args[0], func(trip *models.Trip) (models.Trip, error) {
				return album.DeletePhoto(trip, args[1])
			})
			if err != nil {
				return err
			}
			c.io.Println("✓ Photo deleted")
			return nil
		},
	}
}

func findPhoto(trip *models.Trip, id string) (models.Photo, error) {
	for _, p := range trip.Photos {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Photo{}, fmt.Errorf("%w: %s", album.ErrPhotoNotFound, id)
}

// photoEditCmd: отредактированная копия добавляется в альбом, оригинал остается
func (c *Cli) photoEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <trip-id> <photo-id> <prompt>",
		Short: "Edit a photo with AI; the result is added as a new photo",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.requireMedia()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			trip, err := c.deps.Data.Trip(ctx, args[0])
			if err != nil {
				return err
			}
			photo, err := findPhoto(&trip, args[1])
			if err != nil {
				return err
			}
			if photo.Type == models.MediaTypeVideo || !strings.HasPrefix(photo.URL, "data:image/") {
				return fmt.Errorf("%w: only locally stored images can be edited", album.ErrUnsupportedMedia)
			}

			prompt := strings.Join(args[2:], " ")
			c.io.Println("Editing photo, this may take a moment...")
			img, err := svc.EditImage(ctx, photo.URL, prompt)
			if err != nil {
				return err
			}
			if img == nil {
				c.io.Println("The model did not return an image. Try a different prompt.")
				return nil
			}

			updated := album.AddGenerated(&trip, img.DataURI(), models.MediaTypeImage, "AI: "+prompt, c.now())
			if err := c.deps.Data.SaveTrip(ctx, updated); err != nil {
				return err
			}
			c.io.Printf("✓ Edited photo added (ID: %s)\n", updated.Photos[len(updated.Photos)-1].ID)
			return nil
		},
	}
}

func (c *Cli) vlogCmd() *cobra.Command {
	var (
		prompt     string
		startPhoto string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "vlog <trip-id>",
		Short: "Generate a travel vlog video with AI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.requireMedia()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			trip, err := c.deps.Data.Trip(ctx, args[0])
			if err != nil {
				return err
			}

			var startImage string
			if startPhoto != "" {
				photo, err := findPhoto(&trip, startPhoto)
				if err != nil {
					return err
				}
				startImage = photo.URL
			}

			c.io.Println("Generating video, this can take several minutes...")
			handle, err := svc.GenerateVlog(ctx, prompt, startImage, c.deps.Poll)
			if err != nil {
				return fmt.Errorf("vlog generation failed: %w", err)
			}
			if handle == nil {
				c.io.Println("The job finished without a video.")
				return nil
			}

			if out != "" {
				if err := c.downloadVideo(cmd, svc, handle, out); err != nil {
					return err
				}
			}

			caption := prompt
			if caption == "" {
				caption = "AI Vlog"
			}
			updated := album.AddGenerated(&trip, handle.URI, models.MediaTypeVideo, caption, c.now())
			if err := c.deps.Data.SaveTrip(ctx, updated); err != nil {
				return err
			}
			c.io.Printf("✓ Vlog added to the album (ID: %s)\n", updated.Photos[len(updated.Photos)-1].ID)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&prompt, "prompt", "", "what the video should show")
	flags.StringVar(&startPhoto, "start-photo", "", "photo id to use as the first frame")
	flags.StringVarP(&out, "out", "o", "", "also download the video to this file")
	return cmd
}

func (c *Cli) downloadVideo(cmd *cobra.Command, svc MediaService, handle *media.VideoHandle, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	n, err := svc.Download(cmd.Context(), handle, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	c.io.Printf("✓ Saved %d bytes to %s\n", n, path)
	return nil
}
