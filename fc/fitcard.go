package fc

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/ankurkotwal/fitcard/fc/common"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Largest label box accepted over http, in pixels
const maxBoxSize = 4096

// FitRequest is the body of the fit and render endpoints. Events are only
// used by the fit endpoint.
type FitRequest struct {
	Text        string            `json:"text" binding:"required"`
	Width       int               `json:"width" binding:"required,gt=0,lte=4096"`
	Height      int               `json:"height" binding:"gte=0,lte=4096"`
	Font        string            `json:"font"`
	MinFontSize int               `json:"minFontSize" binding:"gte=0,lte=1000"`
	MaxFontSize int               `json:"maxFontSize" binding:"gte=0,lte=1000"`
	Case        string            `json:"case" binding:"omitempty,oneof=title upper lower"`
	Colour      string            `json:"colour" binding:"omitempty,hexcolor"`
	TextColour  string            `json:"textColour" binding:"omitempty,hexcolor"`
	Events      []common.FitEvent `json:"events" binding:"omitempty,max=100,dive"`
}

// FitResponse is the initial fit plus one result per replayed event
type FitResponse struct {
	common.FitResult
	Events []common.FitResult `json:"events,omitempty"`
}

// Label converts the request into a label at the origin
func (r FitRequest) Label() common.Label {
	return common.Label{
		Text:        r.Text,
		Box:         common.Rect{W: r.Width, H: r.Height},
		Font:        r.Font,
		MinFontSize: r.MinFontSize,
		MaxFontSize: r.MaxFontSize,
		Case:        r.Case,
		Colour:      r.Colour,
		TextColour:  r.TextColour,
	}
}

// GetServer builds the router and returns it with the address to listen on
func GetServer(config *common.Config, debugMode bool, cardFiles Filenames) (*gin.Engine, string) {
	common.SetDebugOutput(debugMode || config.DebugOutput)
	if config.DebugOutput {
		common.NewLog().Dbg("%s", common.YamlObjectAsString(config, "Config"))
	}
	if !debugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	if debugMode {
		pprof.Register(router)
	}
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"Title":       config.AppName,
			"Version":     config.Version,
			"MinFontSize": config.MinFontSize,
			"MaxFontSize": config.MaxFontSize,
		})
	})

	router.POST("/api/fit", func(c *gin.Context) {
		var req FitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		for _, event := range req.Events {
			if event.Width > maxBoxSize || event.Height > maxBoxSize {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf(
					"resize to %dx%d exceeds %d", event.Width, event.Height, maxBoxSize)})
				return
			}
		}
		log := common.NewLog()
		result, events, err := common.ReplayLabel(req.Label(), req.Events, config,
			common.NewFontFaceCache(), log)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, FitResponse{FitResult: result, Events: events})
	})

	router.POST("/api/render", func(c *gin.Context) {
		var req FitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		imgBytes, result, err := common.RenderLabel(req.Label(), config, common.NewLog())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Header("X-Font-Size", strconv.Itoa(result.FontSize))
		c.Data(http.StatusOK, "image/jpeg", imgBytes.Bytes())
	})

	router.POST("/api/cards", func(c *gin.Context) {
		log := common.NewLog()
		sendCards(loadFormFiles(c, log), config, log, c)
	})

	if debugMode {
		router.GET("/test/cards", func(c *gin.Context) {
			// Use local files (specified on the command line)
			log := common.NewLog()
			sendCards(loadLocalFiles(cardFiles, log), config, log, c)
		})
	}

	// Run on port 8080 unless PORT variable specified
	port := os.Getenv("PORT")
	if len(port) == 0 {
		port = "8080"
	}
	return router, fmt.Sprintf(":%s", port)
}

func loadLocalFiles(files []string, log *common.Logger) [][]byte {
	inputFiles := make([][]byte, 0, len(files))
	for _, filename := range files {
		file, err := os.ReadFile(filename)
		if err != nil {
			log.Err("Error reading file. %s", err)
		}
		inputFiles = append(inputFiles, file)
	}
	return inputFiles
}

func loadFormFiles(c *gin.Context, log *common.Logger) [][]byte {
	form, err := c.MultipartForm()
	if err != nil {
		log.Err("Error getting MultipartForm - %s", err)
		return make([][]byte, 0)
	}

	inputFiles := form.File["file"]
	files := make([][]byte, len(inputFiles))
	for idx, file := range inputFiles {
		multipart, err := file.Open()
		if err != nil {
			log.Err("Error opening multipart file %s - %s", file.Filename, err)
			continue
		}
		contents, err := io.ReadAll(multipart)
		multipart.Close()
		if err != nil {
			log.Err("Error reading multipart file %s - %s", file.Filename, err)
			continue
		}
		files[idx] = contents
	}
	return files
}

// sendCards renders every card in the loaded files into one html page
func sendCards(loadedFiles [][]byte, config *common.Config, log *common.Logger,
	c *gin.Context) {
	var cards []common.Card
	for _, file := range loadedFiles {
		if len(file) == 0 {
			continue
		}
		parsed, err := common.ParseCards(file)
		if err != nil {
			log.Err("%v", err)
			continue
		}
		cards = append(cards, parsed...)
	}
	if len(cards) == 0 {
		log.Err("No cards found")
	}

	generatedFiles, numBytes := common.GenerateImages(cards, config, log)
	log.Msg("Generated %d cards (%d bytes)", len(cards), numBytes)

	images := make([]template.URL, 0, len(generatedFiles))
	for _, file := range generatedFiles {
		if file.Len() == 0 {
			continue
		}
		images = append(images, template.URL("data:image/jpeg;base64,"+
			base64.StdEncoding.EncodeToString(file.Bytes())))
	}
	c.HTML(http.StatusOK, "cards.html", gin.H{
		"Title":  config.AppName,
		"Images": images,
		"Logs":   log.Snapshot(),
	})
}

// Filenames are used for storing a list of CLI values
type Filenames []string

func (i *Filenames) String() string {
	return ""
}

// Set adds to the ArrayFlag
func (i *Filenames) Set(value string) error {
	*i = append(*i, value)
	return nil
}

// GetFilesFromDir returns a list of file names from a directory
func GetFilesFromDir(path string) (Filenames, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	files := make(Filenames, 0, len(entries))
	for _, f := range entries {
		if !f.IsDir() {
			files = append(files, fmt.Sprintf("%s/%s", path, f.Name()))
		}
	}
	return files, nil
}
