// Package seed loads the tutorial canvas, its users and the startup
// notifications from an embedded YAML document.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/notifications"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"
	apperrors "github.com/NewJerseyStyle/TheBlueprint-Project/internal/errors"
)

//go:embed tutorial.yaml
var tutorialYAML []byte

// Canvas is a parsed seed document.
type Canvas struct {
	Users         []notifications.User
	Nodes         []canvas.Node
	Edges         []canvas.Edge
	Notifications []notifications.Notification
}

// Snapshot returns the seed graph as an unversioned snapshot.
func (c Canvas) Snapshot() canvas.Snapshot {
	return canvas.Snapshot{Nodes: c.Nodes, Edges: c.Edges}
}

type document struct {
	Users         []notifications.User         `yaml:"users"`
	Lanes         []laneDoc                    `yaml:"lanes"`
	Nodes         []nodeDoc                    `yaml:"nodes"`
	Edges         []edgeDoc                    `yaml:"edges"`
	Notifications []notifications.Notification `yaml:"notifications"`
}

type laneDoc struct {
	ID           string       `yaml:"id"`
	Label        string       `yaml:"label"`
	Color        string       `yaml:"color"`
	Orientation  string       `yaml:"orientation"`
	ShowComments bool         `yaml:"show_comments"`
	Position     canvas.Point `yaml:"position"`
	Size         canvas.Size  `yaml:"size"`
}

type nodeDoc struct {
	ID              string       `yaml:"id"`
	Lane            string       `yaml:"lane"`
	Position        canvas.Point `yaml:"position"`
	Title           string       `yaml:"title"`
	Description     string       `yaml:"description"`
	State           string       `yaml:"state"`
	Assignee        string       `yaml:"assignee"`
	QuestionHint    string       `yaml:"question_hint"`
	NextSmallGoal   bool         `yaml:"next_small_goal"`
	SystemGenerated bool         `yaml:"system_generated"`
	Comments        []commentDoc `yaml:"comments"`
}

type commentDoc struct {
	ID     string    `yaml:"id"`
	Author string    `yaml:"author"`
	Text   string    `yaml:"text"`
	At     time.Time `yaml:"at"`
}

type edgeDoc struct {
	ID           string  `yaml:"id"`
	Source       string  `yaml:"source"`
	Target       string  `yaml:"target"`
	SourceHandle string  `yaml:"source_handle"`
	TargetHandle string  `yaml:"target_handle"`
	Stroke       string  `yaml:"stroke"`
	Width        float64 `yaml:"width"`
	Dash         string  `yaml:"dash"`
	Animated     bool    `yaml:"animated"`
	Label        string  `yaml:"label"`
	PathTBD      bool    `yaml:"path_tbd"`
}

// Tutorial parses the embedded tutorial canvas.
func Tutorial() (Canvas, error) {
	return Parse(bytes.NewReader(tutorialYAML))
}

// Blank returns an empty canvas that still knows the tutorial users.
func Blank() (Canvas, error) {
	tutorial, err := Tutorial()
	if err != nil {
		return Canvas{}, err
	}
	return Canvas{Users: tutorial.Users, Nodes: []canvas.Node{}, Edges: []canvas.Edge{}}, nil
}

// Parse decodes a seed document and checks that the resulting graph is
// referentially valid.
func Parse(r io.Reader) (Canvas, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Canvas{}, apperrors.Validation(apperrors.CodeSeedInvalid, "failed to decode seed document").
			WithCause(err).
			Build()
	}

	names := make(map[string]string, len(doc.Users))
	for _, u := range doc.Users {
		names[u.ID] = u.Name
	}

	out := Canvas{
		Users:         doc.Users,
		Notifications: doc.Notifications,
	}
	for _, l := range doc.Lanes {
		orientation := canvas.Orientation(l.Orientation)
		if orientation == "" {
			orientation = canvas.OrientationVertical
		}
		out.Nodes = append(out.Nodes, canvas.NewLaneNode(l.ID, l.Position, l.Size, canvas.LaneData{
			Label:        l.Label,
			Color:        l.Color,
			Orientation:  orientation,
			ShowComments: l.ShowComments,
		}))
	}
	for _, n := range doc.Nodes {
		state := canvas.NodeState(n.State)
		if !state.Valid() {
			return Canvas{}, apperrors.Validation(apperrors.CodeSeedInvalid, fmt.Sprintf("unknown state %q", n.State)).
				WithResource(n.ID).
				Build()
		}
		comments := make([]canvas.Comment, 0, len(n.Comments))
		for _, c := range n.Comments {
			comments = append(comments, canvas.Comment{
				ID:         c.ID,
				AuthorID:   c.Author,
				AuthorName: names[c.Author],
				Text:       c.Text,
				Timestamp:  c.At,
			})
		}
		node := canvas.NewStrategicNode(n.ID, n.Position, canvas.StrategicData{
			Title:             n.Title,
			Description:       n.Description,
			State:             state,
			AssigneeID:        n.Assignee,
			Comments:          comments,
			IsNextSmallGoal:   n.NextSmallGoal,
			IsSystemGenerated: n.SystemGenerated,
			QuestionHint:      n.QuestionHint,
		})
		node.LaneID = n.Lane
		out.Nodes = append(out.Nodes, node)
	}
	for _, e := range doc.Edges {
		out.Edges = append(out.Edges, canvas.Edge{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: e.SourceHandle,
			TargetHandle: e.TargetHandle,
			Style: canvas.EdgeStyle{
				Stroke:      e.Stroke,
				StrokeWidth: e.Width,
				Dash:        e.Dash,
				Opacity:     canvas.OpacityFull,
			},
			Animated:  e.Animated,
			IsPathTBD: e.PathTBD,
			Label:     e.Label,
		})
	}

	if err := out.Snapshot().Validate(); err != nil {
		return Canvas{}, err
	}
	return out, nil
}
