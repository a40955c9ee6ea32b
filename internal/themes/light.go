package themes

import "arthurchat/pkg/chattypes"

func lightMessageRules(theme chattypes.Theme, sender chattypes.Sender) Declarations {
	background, color := theme.Colors.Surface, theme.Colors.Text
	if sender == chattypes.SenderUser {
		background, color = theme.Colors.Primary, "#ffffff"
	}
	return Declarations{
		decl("background-color", background),
		decl("color", color),
		decl("border-radius", theme.BorderRadius.Medium),
		decl("padding", theme.Spacing.Medium),
		decl("font-family", theme.Typography.FontFamily),
		decl("font-size", theme.Typography.FontSize.Medium),
		decl("box-shadow", "0 2px 8px "+theme.Colors.Shadow),
	}
}

func lightButtonRules(theme chattypes.Theme) Declarations {
	return Declarations{
		decl("background-color", theme.Colors.Primary),
		decl("color", "#ffffff"),
		decl("border", "none"),
		decl("border-radius", theme.BorderRadius.Small),
		decl("padding", theme.Spacing.Small+" "+theme.Spacing.Medium),
		decl("font-family", theme.Typography.FontFamily),
		decl("font-size", theme.Typography.FontSize.Medium),
		decl("font-weight", theme.Typography.FontWeight.Normal),
		decl("cursor", "pointer"),
		decl("transition", "all 0.2s ease"),
	}
}

func lightContainerRules(theme chattypes.Theme) Declarations {
	return Declarations{
		decl("background-color", theme.Colors.Background),
		decl("border-radius", theme.BorderRadius.Large),
		decl("padding", theme.Spacing.Large),
		decl("border", "1px solid "+theme.Colors.Border),
		decl("box-shadow", "0 4px 12px "+theme.Colors.Shadow),
	}
}
