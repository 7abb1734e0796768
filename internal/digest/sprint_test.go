package digest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Afrawles/sprintdigest/internal/jira"
)

func TestResolveActiveSprint(t *testing.T) {
	t.Run("finds the active sprint", func(t *testing.T) {
		client := &fakeTracker{sprints: []jira.Sprint{
			{ID: 1, Name: "Sprint 40", State: "closed"},
			{ID: 2, Name: "Sprint 41", State: "closed"},
			{ID: 3, Name: "Sprint 42", State: "active"},
			{ID: 4, Name: "Sprint 43", State: "future"},
		}}

		sprint, err := ResolveActiveSprint(context.Background(), client, 7)
		require.NoError(t, err)
		require.NotNil(t, sprint)
		require.Equal(t, "Sprint 42", sprint.Name)
	})

	t.Run("none active", func(t *testing.T) {
		client := &fakeTracker{sprints: []jira.Sprint{
			{ID: 1, Name: "Sprint 40", State: "closed"},
			{ID: 2, Name: "Sprint 41", State: "future"},
		}}

		sprint, err := ResolveActiveSprint(context.Background(), client, 7)
		require.NoError(t, err)
		require.Nil(t, sprint)
	})

	t.Run("active sprint on a long board is still on the last page", func(t *testing.T) {
		var sprints []jira.Sprint
		for i := 0; i < 120; i++ {
			sprints = append(sprints, jira.Sprint{ID: i + 1, Name: fmt.Sprintf("Sprint %d", i+1), State: "closed"})
		}
		sprints[117].State = "active"

		client := &fakeTracker{sprints: sprints}
		sprint, err := ResolveActiveSprint(context.Background(), client, 7)
		require.NoError(t, err)
		require.NotNil(t, sprint)
		require.Equal(t, 118, sprint.ID)
	})
}
