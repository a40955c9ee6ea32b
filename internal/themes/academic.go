package themes

import "arthurchat/pkg/chattypes"

func academicMessageRules(theme chattypes.Theme, sender chattypes.Sender) Declarations {
	background, color := theme.Colors.Surface, theme.Colors.Text
	if sender == chattypes.SenderUser {
		background, color = theme.Colors.Primary, "#ffffff"
	}
	return Declarations{
		decl("background-color", background),
		decl("color", color),
		decl("border-radius", theme.BorderRadius.Small),
		decl("padding", theme.Spacing.Large),
		decl("font-family", theme.Typography.FontFamily),
		decl("font-size", theme.Typography.FontSize.Medium),
		decl("font-weight", theme.Typography.FontWeight.Normal),
		decl("border", "2px solid "+theme.Colors.Border),
		decl("line-height", "1.6"),
		decl("box-shadow", "0 1px 3px "+theme.Colors.Shadow),
	}
}

// Academic buttons are outlined: transparent fill, primary text and border.
func academicButtonRules(theme chattypes.Theme) Declarations {
	return Declarations{
		decl("background-color", "transparent"),
		decl("color", theme.Colors.Primary),
		decl("border", "2px solid "+theme.Colors.Primary),
		decl("border-radius", theme.BorderRadius.Small),
		decl("padding", theme.Spacing.Small+" "+theme.Spacing.Large),
		decl("font-family", theme.Typography.FontFamily),
		decl("font-size", theme.Typography.FontSize.Medium),
		decl("font-weight", theme.Typography.FontWeight.Bold),
		decl("cursor", "pointer"),
		decl("transition", "all 0.3s ease"),
		decl("text-transform", "uppercase"),
		decl("letter-spacing", "0.05em"),
	}
}

func academicContainerRules(theme chattypes.Theme) Declarations {
	return Declarations{
		decl("background-color", theme.Colors.Background),
		decl("border-radius", theme.BorderRadius.Small),
		decl("padding", theme.Spacing.ExtraLarge),
		decl("border", "1px solid "+theme.Colors.Border),
		decl("box-shadow", "0 2px 4px "+theme.Colors.Shadow),
		decl("margin", theme.Spacing.Medium),
	}
}
