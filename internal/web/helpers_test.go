package web_test

import (
	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/club"
)

func playerInput(firstName string, teamID *model.TeamID) club.PlayerInput {
	return club.PlayerInput{FirstName: firstName, TeamID: teamID}
}
