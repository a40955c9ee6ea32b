package themes

import "arthurchat/pkg/chattypes"

// Dark messages keep the theme text colour for both senders and add a border.
func darkMessageRules(theme chattypes.Theme, sender chattypes.Sender) Declarations {
	background := theme.Colors.Surface
	if sender == chattypes.SenderUser {
		background = theme.Colors.Primary
	}
	return Declarations{
		decl("background-color", background),
		decl("color", theme.Colors.Text),
		decl("border-radius", theme.BorderRadius.Medium),
		decl("padding", theme.Spacing.Medium),
		decl("font-family", theme.Typography.FontFamily),
		decl("font-size", theme.Typography.FontSize.Medium),
		decl("box-shadow", "0 4px 16px "+theme.Colors.Shadow),
		decl("border", "1px solid "+theme.Colors.Border),
	}
}

func darkButtonRules(theme chattypes.Theme) Declarations {
	return Declarations{
		decl("background-color", theme.Colors.Primary),
		decl("color", theme.Colors.Text),
		decl("border", "1px solid "+theme.Colors.Border),
		decl("border-radius", theme.BorderRadius.Small),
		decl("padding", theme.Spacing.Small+" "+theme.Spacing.Medium),
		decl("font-family", theme.Typography.FontFamily),
		decl("font-size", theme.Typography.FontSize.Medium),
		decl("font-weight", theme.Typography.FontWeight.Normal),
		decl("cursor", "pointer"),
		decl("transition", "all 0.2s ease"),
		decl("box-shadow", "0 2px 8px "+theme.Colors.Shadow),
	}
}

func darkContainerRules(theme chattypes.Theme) Declarations {
	return Declarations{
		decl("background-color", theme.Colors.Background),
		decl("border-radius", theme.BorderRadius.Large),
		decl("padding", theme.Spacing.Large),
		decl("border", "1px solid "+theme.Colors.Border),
		decl("box-shadow", "0 8px 24px "+theme.Colors.Shadow),
	}
}
